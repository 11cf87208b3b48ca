package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/httputil"
)

func runRequireAuth(t *testing.T, tokens TokenService, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var gotID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	NewMiddleware(tokens).RequireAuth(next).ServeHTTP(rec, req)
	return rec, gotID, gotOK
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Code
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, _, ok := runRequireAuth(t, &fakeTokenService{}, "")
	if ok {
		t.Fatal("handler ran without authentication")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != httputil.CodeMissingAuth {
		t.Fatalf("want code %q, got %q", httputil.CodeMissingAuth, code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		rec, _, ok := runRequireAuth(t, &fakeTokenService{}, header)
		if ok {
			t.Fatalf("header %q: handler ran", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: want 401, got %d", header, rec.Code)
		}
		if code := decodeErrorCode(t, rec); code != httputil.CodeInvalidAuthHeader {
			t.Fatalf("header %q: want code %q, got %q", header, httputil.CodeInvalidAuthHeader, code)
		}
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	rec, _, _ := runRequireAuth(t, &fakeTokenService{verifyErr: ErrExpiredToken}, "Bearer some-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != httputil.CodeTokenExpired {
		t.Fatalf("want code %q, got %q", httputil.CodeTokenExpired, code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	rec, _, _ := runRequireAuth(t, &fakeTokenService{verifyErr: ErrInvalidToken}, "Bearer some-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != httputil.CodeInvalidToken {
		t.Fatalf("want code %q, got %q", httputil.CodeInvalidToken, code)
	}
}

func TestRequireAuth_NonUUIDClaim(t *testing.T) {
	tokens := &fakeTokenService{claims: &TokenClaims{UserID: "not-a-uuid"}}
	rec, _, _ := runRequireAuth(t, tokens, "Bearer some-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != httputil.CodeInvalidTokenUserID {
		t.Fatalf("want code %q, got %q", httputil.CodeInvalidTokenUserID, code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokens := &fakeTokenService{claims: &TokenClaims{UserID: userID.String()}}

	rec, gotID, ok := runRequireAuth(t, tokens, "Bearer some-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !ok || gotID != userID {
		t.Fatalf("context user: ok=%v id=%v, want %v", ok, gotID, userID)
	}
}
