package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// document is the on-disk layout of every collection file.
type document[T any] struct {
	Data []T `json:"data"`
}

// File reads and atomically rewrites one collection file.
type File[T any] struct {
	mu   sync.Mutex
	path string
}

func NewFile[T any](path string) *File[T] {
	return &File[T]{path: path}
}

func (f *File[T]) Path() string {
	return f.path
}

// Load returns the stored records. A missing or empty file is an empty
// collection and is created on disk.
func (f *File[T]) Load() ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)

	if errors.Is(err, os.ErrNotExist) || (err == nil && len(raw) == 0) {
		return []T{}, f.write([]T{})
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}

	var doc document[T]

	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}

	if doc.Data == nil {
		doc.Data = []T{}
	}

	return doc.Data, nil
}

func (f *File[T]) Save(items []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(items)
}

func (f *File[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}

	body, err := json.MarshalIndent(document[T]{Data: items}, "", "  ")

	if err != nil {
		return fmt.Errorf("encoding %s: %w", f.path, err)
	}

	dir := filepath.Dir(f.path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")

	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return err
	}

	return syncDir(dir)
}

func syncDir(path string) error {
	dir, err := os.Open(path)

	if err != nil {
		return err
	}

	defer dir.Close()

	return dir.Sync()
}
