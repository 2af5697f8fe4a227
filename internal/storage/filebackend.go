package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"productivelife/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// FileBackend keeps each record in <dir>/<name>.json.
//
// Writes are atomic and keep the previous version as <name>.json.bak. A file
// that is empty or not valid JSON is recovered from its .bak when possible;
// otherwise it is moved aside as <name>.json.corrupt.<timestamp> and treated as
// absent.
type FileBackend struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string, logger *slog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileBackend{dir: dir, logger: logger, now: time.Now}, nil
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string {
	return b.dir
}

// Path returns the file that holds record name.
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

// Get implements Backend.
func (b *FileBackend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := b.Path(name)
	data, ok, err := fsutil.ReadIfExists(path)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if !ok {
		return nil, false, nil
	}
	if usable(data) {
		return data, true, nil
	}
	return b.recover(name)
}

// Put implements Backend.
func (b *FileBackend) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := b.Path(name)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Close implements Backend. Files need no teardown.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) recover(name string) ([]byte, bool, error) {
	path := b.Path(name)
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, b.now().Format("20060102-150405"))

	bak, ok, _ := fsutil.ReadIfExists(path + ".bak")
	if ok && usable(bak) {
		_ = os.Rename(path, corruptPath)
		if err := fsutil.WriteFileAtomic(path, bak, dataFilePerm); err != nil {
			return nil, false, fmt.Errorf("restore %s from backup: %w", filepath.Base(path), err)
		}
		b.logger.Warn("recovered record from backup", "record", name, "moved_to", corruptPath)
		return bak, true, nil
	}

	if err := os.Rename(path, corruptPath); err != nil {
		return nil, false, fmt.Errorf("move corrupt %s aside: %w", filepath.Base(path), err)
	}
	b.logger.Warn("record unreadable, starting empty", "record", name, "moved_to", corruptPath)
	return nil, false, nil
}

func usable(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && json.Valid(trimmed)
}
