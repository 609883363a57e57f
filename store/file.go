package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore keeps each collection as a JSON array in <root>/<collection>.json.
type FileStore struct {
	rootDir string
}

// NewFileStore creates a file-backed store rooted at rootDir.
func NewFileStore(rootDir string) (*FileStore, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{rootDir: rootDir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.rootDir, collection+".json")
}

// Load implements Store.
func (s *FileStore) Load(_ context.Context, collection string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.path(collection), ErrCollectionMissing)
		}
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse collection file %s: %w", s.path(collection), err)
	}
	return records, nil
}

// Save implements Store. The file is replaced atomically so concurrent
// readers never observe a partial write.
func (s *FileStore) Save(_ context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tmp, err := os.CreateTemp(s.rootDir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		return fmt.Errorf("failed to replace collection file: %w", err)
	}
	return nil
}

// Names implements Lister.
func (s *FileStore) Names(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
