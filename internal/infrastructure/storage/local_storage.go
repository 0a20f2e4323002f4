package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// allowedImageTypes maps accepted MIME types to the extension files are
// stored under. Detection runs on content, not on the client-sent header.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalImageStore writes uploaded images to a directory served under
// /images/ and returns the public path.
type LocalImageStore struct {
	dir      string
	maxBytes int64
	nowNano  func() int64
}

var _ contract.IFileStorage = (*LocalImageStore)(nil)

// NewLocalImageStore creates the store and its backing directory.
func NewLocalImageStore(dir string, maxBytes int64) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalImageStore{
		dir:      dir,
		maxBytes: maxBytes,
		nowNano:  func() int64 { return time.Now().UnixNano() },
	}, nil
}

// Save validates size and content type, then stores the upload under a
// timestamp-based name.
func (s *LocalImageStore) Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > s.maxBytes {
		return "", entity.NewValidationError(fmt.Sprintf("image must be at most %d bytes", s.maxBytes))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", entity.NewValidationError(fmt.Sprintf("image must be at most %d bytes", s.maxBytes))
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return "", entity.NewValidationError("image must be a JPEG, PNG, GIF or WebP file")
	}

	name := fmt.Sprintf("%d%s", s.nowNano(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/images/" + name, nil
}
