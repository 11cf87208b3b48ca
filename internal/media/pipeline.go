// Package media moves uploaded image bytes into the blob store and hands
// back the durable URLs a project record can reference.
package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/portfolio-api/internal/logging"
	"github.com/redmonkez12/portfolio-api/internal/storage"
)

// ErrUpload marks a blob store failure so handlers can map it to a distinct
// upstream status instead of a generic 500.
var ErrUpload = errors.New("upload to blob store failed")

// keyPrefix is the fixed logical namespace for project images.
const keyPrefix = "projects"

// Upload is one file taken from a multipart request, fully buffered.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Pipeline ingests uploads into the blob store. Ingestion is all-or-nothing:
// the first failed upload aborts the batch and no URLs are returned. Already
// uploaded blobs are not deleted; the store is the system of record for
// orphan cleanup.
type Pipeline struct {
	store  storage.BlobStore
	logger *logging.Logger
}

func NewPipeline(store storage.BlobStore, logger *logging.Logger) *Pipeline {
	return &Pipeline{store: store, logger: logger}
}

// Ingest uploads every file and returns the resulting URLs in input order.
// Must be called before the project record is persisted so a record never
// references a URL that does not exist yet.
func (p *Pipeline) Ingest(ctx context.Context, files []Upload) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, 0, len(files))
	for i, f := range files {
		key := objectKey(f.Filename)

		url, err := p.store.Store(ctx, key, f.ContentType, f.Data)
		if err != nil {
			p.logger.Error("image upload failed",
				"file", f.Filename,
				"index", i,
				"uploaded_so_far", len(urls),
				"error", err.Error(),
			)
			return nil, fmt.Errorf("%w: file %q: %v", ErrUpload, f.Filename, err)
		}

		urls = append(urls, url)
	}

	return urls, nil
}

// objectKey builds a collision-free key under the project namespace,
// keeping the original file extension for content-type sniffing by CDNs.
func objectKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New(), ext)
}
