package storage

import (
	"fmt"
	"io"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	default:
		return false
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the KV backend named by backend. For sqlite, path is the
// database file; for file, path is a directory. The closer must be closed
// when the caller is done.
func Open(backend Backend, path string) (KV, io.Closer, error) {
	switch backend {
	case BackendSQLite:
		if strings.TrimSpace(path) == "" {
			return nil, nil, fmt.Errorf("storage: sqlite backend requires a path")
		}
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	case BackendFile:
		fs, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	case BackendMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
