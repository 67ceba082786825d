// Package upload stores user supplied files such as expense receipts. The
// content type is sniffed from the bytes, never taken from the client.
package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Result reports a rejected file through Error; err is reserved for storage failures
type Result struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Store is where accepted files end up
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}

type Uploader struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// Upload checks size and sniffed type, then stores fh under dir as
// <unix>_<uuid8><ext>. Filename in the result is the store key.
func (u *Uploader) Upload(ctx context.Context, fh *multipart.FileHeader, dir string, allowed []string, maxSize int64) (Result, error) {
	if fh == nil {
		return Result{Error: "No file was uploaded"}, nil
	}
	if maxSize > 0 && fh.Size > maxSize {
		return Result{Error: fmt.Sprintf("File is too large (maximum %s)", humanSize(maxSize))}, nil
	}

	f, err := fh.Open()
	if err != nil {
		return Result{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return Result{}, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !isAllowed(mt, allowed) {
		return Result{Error: "File type is not allowed"}, nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Result{}, fmt.Errorf("failed to rewind upload: %w", err)
	}

	key := path.Join(dir, fmt.Sprintf("%d_%s%s", u.now().Unix(), uuid.NewString()[:8], mt.Extension()))
	if err := u.store.Put(ctx, key, f, mt.String()); err != nil {
		return Result{}, fmt.Errorf("failed to store upload: %w", err)
	}
	return Result{Success: true, Filename: key}, nil
}

// Remove deletes a previously stored file; unknown keys are not an error
func (u *Uploader) Remove(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	return u.store.Delete(ctx, key)
}

func isAllowed(mt *mimetype.MIME, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if mt.Is(a) {
			return true
		}
	}
	return false
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}
