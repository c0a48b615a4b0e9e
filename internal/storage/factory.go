package storage

import (
	"fmt"

	"fincontrol/internal/config"
	"fincontrol/internal/log"
)

// BackendType selects the persistence backend.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	FileBackend   BackendType = "file"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) String() string { return string(bt) }

// IsValid returns true if the backend type is known.
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, FileBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// BackendTypeStrings lists the valid backend names for config validation.
func BackendTypeStrings() []string {
	return []string{SQLiteBackend.String(), FileBackend.String(), MemoryBackend.String()}
}

// Open creates the blob store selected by the configuration.
func Open(cfg *config.Config, logger *log.Logger) (Blob, error) {
	backend := BackendType(cfg.DataBackend)
	if !backend.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch backend {
	case SQLiteBackend:
		store, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite blob store", log.FieldPath, cfg.SQLiteDBPath)
		return store, nil

	case FileBackend:
		store, err := NewFileStore(cfg.DataFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		logger.Info("Initialized file blob store", log.FieldPath, cfg.DataFilePath)
		return store, nil

	default:
		logger.Info("Initialized memory blob store")
		return NewMemoryStore(), nil
	}
}
