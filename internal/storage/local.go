package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalService stores media on the local filesystem, served by the HTTP
// layer under baseURL.
type LocalService struct {
	root    string
	baseURL string
}

func NewLocalService(root, baseURL string) *LocalService {
	return &LocalService{
		root:    filepath.Clean(root),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *LocalService) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	path, err := s.objectPath(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	_, copyErr := io.Copy(f, body)
	closeErr := f.Close()
	if copyErr != nil {
		return "", fmt.Errorf("write media file: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close media file: %w", closeErr)
	}

	return s.baseURL + "/" + strings.TrimPrefix(key, "/"), nil
}

func (s *LocalService) Delete(ctx context.Context, key string) error {
	path, err := s.objectPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// objectPath rejects keys that would escape the media root.
func (s *LocalService) objectPath(key string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if rel, err := filepath.Rel(s.root, path); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return path, nil
}

var _ Service = (*LocalService)(nil)
