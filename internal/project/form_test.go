package project

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type formField struct {
	key   string
	value string
}

type formFile struct {
	key      string
	filename string
	content  []byte
}

func multipartRequest(t *testing.T, fields []formField, files []formFile) *http.Request {
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

	req := httptest.NewRequest(http.MethodPost, "/projects", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestParseForm_JSONLists(t *testing.T) {
	req := multipartRequest(t, []formField{
		{"title", "My Project"},
		{"technologies", `["go","postgres"]`},
		{"existingImages", `[]`},
	}, nil)

	form, err := ParseForm(req, 1, 5<<20)
	if err != nil {
		t.Fatalf("ParseForm error: %v", err)
	}
	if form.Title == nil || *form.Title != "My Project" {
		t.Fatalf("title: %v", form.Title)
	}
	if form.Technologies == nil || len(*form.Technologies) != 2 {
		t.Fatalf("technologies: %v", form.Technologies)
	}
	if form.ExistingImages == nil || len(*form.ExistingImages) != 0 {
		t.Fatalf("existingImages must be present and empty: %v", form.ExistingImages)
	}
}

func TestParseForm_ListFallback(t *testing.T) {
	// a bare value that is not JSON still counts as one entry
	req := multipartRequest(t, []formField{{"technologies", "plain go"}}, nil)

	form, err := ParseForm(req, 1, 5<<20)
	if err != nil {
		t.Fatalf("ParseForm error: %v", err)
	}
	if form.Technologies == nil || len(*form.Technologies) != 1 || (*form.Technologies)[0] != "plain go" {
		t.Fatalf("fallback list: %v", form.Technologies)
	}
}

func TestParseForm_AbsentVsEmpty(t *testing.T) {
	req := multipartRequest(t, []formField{{"githubLink", ""}}, nil)

	form, err := ParseForm(req, 1, 5<<20)
	if err != nil {
		t.Fatalf("ParseForm error: %v", err)
	}
	if form.GithubLink == nil || *form.GithubLink != "" {
		t.Fatalf("submitted empty field must be present: %v", form.GithubLink)
	}
	if form.LiveLink != nil {
		t.Fatalf("omitted field must be nil: %v", form.LiveLink)
	}
	if form.Technologies != nil {
		t.Fatalf("omitted list must be nil: %v", form.Technologies)
	}
}

func TestParseForm_Dates(t *testing.T) {
	req := multipartRequest(t, []formField{{"dateCompleted", "2024-06-15"}}, nil)
	form, err := ParseForm(req, 1, 5<<20)
	if err != nil {
		t.Fatalf("ParseForm error: %v", err)
	}
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if form.DateCompleted == nil || !form.DateCompleted.Equal(want) {
		t.Fatalf("date: %v", form.DateCompleted)
	}

	req = multipartRequest(t, []formField{{"dateCompleted", "15/06/2024"}}, nil)
	if _, err := ParseForm(req, 1, 5<<20); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
}

func TestParseForm_FileCap(t *testing.T) {
	files := []formFile{
		{"images", "a.png", []byte{1}},
		{"images", "b.png", []byte{2}},
	}
	req := multipartRequest(t, nil, files)

	if _, err := ParseForm(req, 1, 5<<20); !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("want ErrTooManyImages, got %v", err)
	}
}

func TestParseForm_FileTooLarge(t *testing.T) {
	req := multipartRequest(t, nil, []formFile{{"images", "a.png", []byte("0123456789")}})

	if _, err := ParseForm(req, 1, 4); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("want ErrFileTooLarge, got %v", err)
	}
}

func TestParseForm_ReadsFiles(t *testing.T) {
	req := multipartRequest(t, nil, []formFile{{"images", "shot.png", []byte{0x89, 0x50}}})

	form, err := ParseForm(req, 1, 5<<20)
	if err != nil {
		t.Fatalf("ParseForm error: %v", err)
	}
	if len(form.Files) != 1 {
		t.Fatalf("want 1 file, got %d", len(form.Files))
	}
	f := form.Files[0]
	if f.Filename != "shot.png" || !bytes.Equal(f.Data, []byte{0x89, 0x50}) {
		t.Fatalf("file not read back: %+v", f)
	}
}

func TestParseForm_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")

	if _, err := ParseForm(req, 1, 5<<20); !errors.Is(err, ErrInvalidForm) {
		t.Fatalf("want ErrInvalidForm, got %v", err)
	}
}
