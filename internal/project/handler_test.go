package project

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/auth"
	"github.com/redmonkez12/portfolio-api/internal/httputil"
	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/media"
)

type stubBlobStore struct {
	calls int
	err   error
}

func (s *stubBlobStore) Store(ctx context.Context, key, contentType string, data []byte) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.example.com/" + key, nil
}

type stubInvalidator struct {
	calls  int
	lastID uuid.UUID
}

func (s *stubInvalidator) InvalidateForUser(ctx context.Context, userID uuid.UUID) {
	s.calls++
	s.lastID = userID
}

// newTestRouter mounts the project routes behind a middleware that plants the
// caller's identity, the way the auth middleware does after token verification.
func newTestRouter(repo *fakeRepo, store *stubBlobStore, inv *stubInvalidator, userID uuid.UUID) http.Handler {
	logger := logging.NewLogger(true)
	h := NewHandler(NewService(repo, logger), media.NewPipeline(store, logger), inv, logger, 1, 5<<20)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), auth.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/projects", h.List)
	r.Post("/projects", h.Create)
	r.Put("/projects/{id}", h.Update)
	r.Delete("/projects/{id}", h.Delete)
	return r
}

func multipartBody(t *testing.T, fields []formField, files []formFile) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.key, f.filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func decodeProject(t *testing.T, rec *httptest.ResponseRecorder) *Project {
	t.Helper()
	var resp ProjectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Project
}

func TestCreateHandler_NoImages(t *testing.T) {
	repo := &fakeRepo{}
	store := &stubBlobStore{}
	inv := &stubInvalidator{}
	userID := uuid.New()
	router := newTestRouter(repo, store, inv, userID)

	body, contentType := multipartBody(t, []formField{
		{"title", "My Project"},
		{"description", "A thing I built"},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if p.Images == nil || len(p.Images) != 0 {
		t.Fatalf("want empty images list, got %#v", p.Images)
	}
	if p.UserID != userID {
		t.Fatalf("owner not set from context: %v", p.UserID)
	}
	if store.calls != 0 {
		t.Fatalf("blob store must not be touched without files, got %d calls", store.calls)
	}
	if inv.calls != 1 || inv.lastID != userID {
		t.Fatalf("portfolio not invalidated: calls=%d id=%v", inv.calls, inv.lastID)
	}
}

func TestCreateHandler_CarriesForwardExistingImages(t *testing.T) {
	repo := &fakeRepo{}
	router := newTestRouter(repo, &stubBlobStore{}, &stubInvalidator{}, uuid.New())

	body, contentType := multipartBody(t, []formField{
		{"title", "t"},
		{"description", "d"},
		{"existingImages", `["https://cdn.example.com/projects/keep.png"]`},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if len(p.Images) != 1 || p.Images[0] != "https://cdn.example.com/projects/keep.png" {
		t.Fatalf("existing reference not carried forward: %v", p.Images)
	}
}

func TestCreateHandler_UploadsFile(t *testing.T) {
	repo := &fakeRepo{}
	store := &stubBlobStore{}
	router := newTestRouter(repo, store, &stubInvalidator{}, uuid.New())

	body, contentType := multipartBody(t,
		[]formField{{"title", "t"}, {"description", "d"}},
		[]formFile{{"images", "shot.png", []byte{0x89, 0x50}}},
	)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if len(p.Images) != 1 || !strings.HasPrefix(p.Images[0], "https://cdn.example.com/projects/") {
		t.Fatalf("uploaded URL missing: %v", p.Images)
	}
	if store.calls != 1 {
		t.Fatalf("want 1 upload, got %d", store.calls)
	}
}

func TestCreateHandler_ValidatesBeforeUpload(t *testing.T) {
	store := &stubBlobStore{}
	router := newTestRouter(&fakeRepo{}, store, &stubInvalidator{}, uuid.New())

	body, contentType := multipartBody(t,
		[]formField{{"title", "   "}, {"description", "d"}},
		[]formFile{{"images", "shot.png", []byte{1}}},
	)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != httputil.CodeTitleRequired {
		t.Fatalf("want code %q, got %q", httputil.CodeTitleRequired, resp.Code)
	}
	if store.calls != 0 {
		t.Fatalf("rejected request must not upload, got %d calls", store.calls)
	}
}

func TestCreateHandler_BlobStoreDown(t *testing.T) {
	store := &stubBlobStore{err: errors.New("connection refused")}
	repo := &fakeRepo{}
	router := newTestRouter(repo, store, &stubInvalidator{}, uuid.New())

	body, contentType := multipartBody(t,
		[]formField{{"title", "t"}, {"description", "d"}},
		[]formFile{{"images", "shot.png", []byte{1}}},
	)
	req := httptest.NewRequest(http.MethodPost, "/projects", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("want 502, got %d", rec.Code)
	}
	if repo.created != nil {
		t.Fatal("record must not be persisted when ingestion fails")
	}
}

func TestUpdateHandler_FileReplacesImages(t *testing.T) {
	userID := uuid.New()
	existing := &Project{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "t",
		Description: "d",
		Images:      []string{"https://cdn.example.com/projects/old1.png", "https://cdn.example.com/projects/old2.png"},
	}
	repo := &fakeRepo{getOut: existing}
	store := &stubBlobStore{}
	router := newTestRouter(repo, store, &stubInvalidator{}, userID)

	body, contentType := multipartBody(t, nil,
		[]formFile{{"images", "new.png", []byte{1}}},
	)
	req := httptest.NewRequest(http.MethodPut, "/projects/"+existing.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if len(p.Images) != 1 || !strings.HasPrefix(p.Images[0], "https://cdn.example.com/projects/") {
		t.Fatalf("images not replaced by the upload: %v", p.Images)
	}
	if strings.Contains(p.Images[0], "old1") || strings.Contains(p.Images[0], "old2") {
		t.Fatalf("old reference survived: %v", p.Images)
	}
}

func TestUpdateHandler_CarriesForwardExistingImages(t *testing.T) {
	userID := uuid.New()
	existing := &Project{ID: uuid.New(), UserID: userID, Title: "t", Description: "d", Images: []string{"a", "b"}}
	repo := &fakeRepo{getOut: existing}
	store := &stubBlobStore{}
	router := newTestRouter(repo, store, &stubInvalidator{}, userID)

	body, contentType := multipartBody(t, []formField{
		{"existingImages", `["a"]`},
	}, nil)
	req := httptest.NewRequest(http.MethodPut, "/projects/"+existing.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if len(p.Images) != 1 || p.Images[0] != "a" {
		t.Fatalf("kept references not applied: %v", p.Images)
	}
	if store.calls != 0 {
		t.Fatalf("carry-forward must not upload, got %d calls", store.calls)
	}
}

func TestUpdateHandler_OmittedImagesUntouched(t *testing.T) {
	userID := uuid.New()
	existing := &Project{ID: uuid.New(), UserID: userID, Title: "t", Description: "d", Images: []string{"a", "b"}}
	router := newTestRouter(&fakeRepo{getOut: existing}, &stubBlobStore{}, &stubInvalidator{}, userID)

	title := "renamed"
	body, contentType := multipartBody(t, []formField{{"title", title}}, nil)
	req := httptest.NewRequest(http.MethodPut, "/projects/"+existing.ID.String(), body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decodeProject(t, rec)
	if p.Title != "renamed" {
		t.Fatalf("title not updated: %q", p.Title)
	}
	if len(p.Images) != 2 {
		t.Fatalf("images must be untouched when neither files nor existingImages are sent: %v", p.Images)
	}
}

func TestDeleteHandler_NonOwner(t *testing.T) {
	existing := &Project{ID: uuid.New(), UserID: uuid.New()}
	inv := &stubInvalidator{}
	router := newTestRouter(&fakeRepo{getOut: existing}, &stubBlobStore{}, inv, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+existing.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", rec.Code)
	}
	if inv.calls != 0 {
		t.Fatal("failed delete must not invalidate the portfolio")
	}
}
