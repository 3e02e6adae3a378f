package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRepo keeps the whole state in a single JSON document on disk.
// Every save replaces the file atomically; there is no history to prune.
type FileRepo struct {
	path string
}

// NewFileRepo returns a FileRepo for the document at path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Path returns the document path.
func (r *FileRepo) Path() string {
	return r.path
}

func (r *FileRepo) Save(_ context.Context, snap *Snapshot) error {
	raw, err := EncodeSnapshotData(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	if err := EnsureDir(r.path); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".tactics-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

// Latest reads the document. A missing file means no state yet.
func (r *FileRepo) Latest(_ context.Context) (*Snapshot, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	data, err := DecodeSnapshotData(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	snap := &Snapshot{Data: *data}
	if info, err := os.Stat(r.path); err == nil {
		snap.Timestamp = info.ModTime()
	}
	return snap, nil
}

func (r *FileRepo) Prune(_ context.Context, _ int) error {
	return nil
}
