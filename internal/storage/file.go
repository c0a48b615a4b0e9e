package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fincontrol/internal/core"
)

// FileStore keeps the serialized FinanceData in a single JSON file, the
// closest analogue to the browser-local blob the data model was designed
// around.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads and deserializes the file. Returns (nil, nil) when the file
// does not exist yet.
func (s *FileStore) Load(_ context.Context) (*core.FinanceData, error) {
	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var data core.FinanceData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode data file: %w", err)
	}
	return &data, nil
}

// Save serializes the aggregate and replaces the file atomically via a
// temp-file rename, so a crash mid-write never leaves a half snapshot.
func (s *FileStore) Save(_ context.Context, data *core.FinanceData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
