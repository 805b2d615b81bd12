// Package storage holds uploaded site images (avatars, backgrounds,
// project shots) and hands back the reference the record stores. The
// record never interprets the reference; it is whatever Put returned.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"siteforge/internal/util"
)

// MediaStore persists one uploaded image and returns its public reference.
type MediaStore interface {
	Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// extFor derives a file extension from the content type, falling back to
// the uploaded filename.
func extFor(filename, contentType string) string {
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".bin"
}

// DiskStore writes images under a local directory served at /media/.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the media directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir is the directory HTTP serves as /media/.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Put stores the image under a fresh key and returns "/media/<key>".
func (s *DiskStore) Put(_ context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := util.NewID() + extFor(filename, contentType)
	f, err := os.CreateTemp(s.dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	tmp := f.Name()
	if _, err := io.Copy(f, io.LimitReader(r, size)); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close media file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, key)); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("place media file: %w", err)
	}
	return "/media/" + key, nil
}
