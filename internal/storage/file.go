package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"channel-pricer/internal/settings"

	"gopkg.in/yaml.v3"
)

// FileStorage persists settings as a YAML document on local disk.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Path() string {
	return s.path
}

// Load returns the defaults when the file does not exist yet. Fields missing
// from the document keep their default values.
func (s *FileStorage) Load(_ context.Context) (settings.Settings, error) {
	const operation = "storage.FileStorage.Load"

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("%s: read %s: %w", operation, s.path, err)
	}

	var p settings.Patch
	if err := yaml.Unmarshal(b, &p); err != nil {
		return settings.Settings{}, fmt.Errorf("%s: parse %s: %w", operation, s.path, err)
	}
	return settings.FromStored(p), nil
}

func (s *FileStorage) Save(_ context.Context, st settings.Settings) error {
	const operation = "storage.FileStorage.Save"

	b, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", operation, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: create dir: %w", operation, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("%s: create temp: %w", operation, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: write: %w", operation, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: close: %w", operation, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%s: rename: %w", operation, err)
	}
	return nil
}

func (s *FileStorage) Reset(_ context.Context) error {
	const operation = "storage.FileStorage.Reset"

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

var _ settings.Store = (*FileStorage)(nil)
