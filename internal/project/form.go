package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redmonkez12/portfolio-api/internal/media"
)

var (
	ErrTooManyImages = errors.New("too many image files")
	ErrFileTooLarge  = errors.New("image file too large")
	ErrInvalidDate   = errors.New("invalid dateCompleted value")
	ErrInvalidForm   = errors.New("invalid multipart form")
)

// maxFormMemory bounds the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxFormMemory = 32 << 20

// Form is the decoded multipart body of a create/update project request.
// Pointer fields distinguish "not provided" from "provided as empty".
type Form struct {
	Title          *string
	Description    *string
	Technologies   *[]string
	GithubLink     *string
	LiveLink       *string
	DateCompleted  *time.Time
	ExistingImages *[]string
	Files          []media.Upload
}

// ParseForm decodes the multipart request body. maxFiles is the product-level
// image cap; exceeding it fails here, before any upload happens. maxFileSize
// bounds each individual file.
func ParseForm(r *http.Request, maxFiles int, maxFileSize int64) (*Form, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	form := &Form{}

	if v, ok := formValue(r, "title"); ok {
		form.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		form.Description = &v
	}
	if v, ok := formValue(r, "githubLink"); ok {
		form.GithubLink = &v
	}
	if v, ok := formValue(r, "liveLink"); ok {
		form.LiveLink = &v
	}
	if v, ok := formValue(r, "technologies"); ok {
		list := parseStringList(v)
		form.Technologies = &list
	}
	if v, ok := formValue(r, "existingImages"); ok {
		list := parseStringList(v)
		form.ExistingImages = &list
	}
	if v, ok := formValue(r, "dateCompleted"); ok && strings.TrimSpace(v) != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return nil, ErrInvalidDate
		}
		form.DateCompleted = &parsed
	}

	if r.MultipartForm != nil {
		fileHeaders := r.MultipartForm.File["images"]
		if len(fileHeaders) > maxFiles {
			return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyImages, len(fileHeaders), maxFiles)
		}

		for _, fh := range fileHeaders {
			if fh.Size > maxFileSize {
				return nil, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrFileTooLarge, fh.Filename, fh.Size, maxFileSize)
			}

			f, err := fh.Open()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}

			form.Files = append(form.Files, media.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	return form, nil
}

// formValue reports whether the field was present at all, so callers can
// tell an omitted field from one submitted empty.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseStringList decodes a form field that arrives as a JSON array string.
// Fallback policy: a non-empty value that is not valid JSON is treated as a
// single-element list rather than being discarded; an empty value yields an
// empty list.
func parseStringList(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	return []string{raw}
}

// parseDate accepts RFC 3339 timestamps or bare dates
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
