// Package backup keeps timestamped snapshots of the data directory and can
// restore any of them.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"productivelife/internal/fsutil"
	"productivelife/internal/storage"
)

const (
	ManifestVersion = "2"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"

	nameLayout = "2006-01-02_150405"
)

// Manager handles backup and restore operations for one data directory.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
	now        func() time.Time
	logger     *slog.Logger
}

// Manifest is written next to the copied files.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// Info summarizes one backup.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Stats     map[string]int
}

// NewManager creates a manager for dataDir. Backups live in dataDir/backups.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
		now:        time.Now,
		logger:     slog.Default(),
	}
}

// SetNowFunc overrides the clock used to name backups. Nil restores time.Now.
func (m *Manager) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	m.now = now
}

// SetLogger replaces the logger. Nil restores slog.Default().
func (m *Manager) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	m.logger = l
}

// dataFiles lists the files a backup may contain: one per record plus the
// SQLite database.
func dataFiles() []string {
	files := make([]string, 0, len(storage.Records)+1)
	for _, r := range storage.Records {
		files = append(files, r+".json")
	}
	return append(files, storage.SQLiteFile)
}

func formatName(t time.Time) string {
	return fmt.Sprintf("%s_%03d", t.Format(nameLayout), t.Nanosecond()/1e6)
}

// parseName accepts 2006-01-02_150405 with an optional _mmm suffix.
func parseName(name string) (time.Time, error) {
	base := name
	var ms int
	if len(name) == len(nameLayout)+4 {
		if name[len(nameLayout)] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup name: %q", name)
		}
		n, err := strconv.Atoi(name[len(nameLayout)+1:])
		if err != nil || n < 0 || n > 999 {
			return time.Time{}, fmt.Errorf("invalid backup name: %q", name)
		}
		base, ms = name[:len(nameLayout)], n
	}
	t, err := time.ParseInLocation(nameLayout, base, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid backup name: %q", name)
	}
	return t.Add(time.Duration(ms) * time.Millisecond), nil
}

func (m *Manager) pathFor(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseName(name); err != nil {
		return "", err
	}
	return filepath.Join(m.backupDir, name), nil
}

// Create copies every present data file into a new backup and returns its name.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	createdAt := m.now()
	name, dir, err := m.reserve(createdAt)
	if err != nil {
		return "", err
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  createdAt,
		AppVersion: m.appVersion,
		Files:      []string{},
		Stats:      make(map[string]int),
	}
	for _, file := range dataFiles() {
		src := filepath.Join(m.dataDir, file)
		if !fsutil.Exists(src) {
			continue
		}
		if err := m.copyIn(ctx, src, filepath.Join(dir, file)); err != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("failed to copy %s: %w", file, err)
		}
		manifest.Files = append(manifest.Files, file)
		if n, ok := countItems(src); ok {
			manifest.Stats[statsKey(file)] = n
		}
	}

	if err := fsutil.WriteJSON(filepath.Join(dir, ManifestFile), manifest, 0600, false); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	m.logger.Info("backup created", "name", name, "files", len(manifest.Files))
	return name, nil
}

// reserve creates a fresh backup directory, stepping the name forward by a
// millisecond while it collides with an existing one.
func (m *Manager) reserve(t time.Time) (string, string, error) {
	for i := 0; i < 1000; i++ {
		name := formatName(t)
		dir := filepath.Join(m.backupDir, name)
		err := os.Mkdir(dir, 0700)
		if err == nil {
			return name, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("failed to create backup: %w", err)
		}
		t = t.Add(time.Millisecond)
	}
	return "", "", fmt.Errorf("failed to create backup: too many backups at %s", t.Format(nameLayout))
}

// copyIn copies a data file into a backup. The database goes through
// VACUUM INTO so a WAL-mode file is captured consistently.
func (m *Manager) copyIn(ctx context.Context, src, dst string) error {
	if filepath.Base(src) != storage.SQLiteFile {
		return fsutil.CopyFile(src, dst, 0600)
	}
	db, err := storage.OpenSQLite(ctx, src)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.SnapshotTo(ctx, dst)
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.Get(entry.Name())
		if err != nil {
			continue
		}
		backups = append(backups, *info)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Get returns information about one backup. A missing manifest falls back to
// the timestamp in the name.
func (m *Manager) Get(name string) (*Info, error) {
	dir, err := m.pathFor(name)
	if err != nil {
		return nil, err
	}
	if !fsutil.Exists(dir) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}

	manifest, err := readManifest(dir)
	if err != nil {
		created, _ := parseName(name)
		manifest = Manifest{CreatedAt: created, Stats: map[string]int{}}
	}
	return &Info{Name: name, Path: dir, CreatedAt: manifest.CreatedAt, Stats: manifest.Stats}, nil
}

// Restore copies a backup's files over the data directory after taking a
// safety backup of the current state. It returns the safety backup's name.
func (m *Manager) Restore(ctx context.Context, name string) (string, error) {
	dir, err := m.pathFor(name)
	if err != nil {
		return "", err
	}
	if !fsutil.Exists(dir) {
		return "", fmt.Errorf("backup not found: %s", name)
	}

	files := dataFiles()
	if manifest, err := readManifest(dir); err == nil {
		files = manifest.Files
	}

	// Check everything before touching the data directory.
	for _, file := range files {
		if err := validateFile(filepath.Join(dir, file)); err != nil {
			return "", fmt.Errorf("backup file %s is invalid: %w", file, err)
		}
	}

	safety, err := m.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, file := range files {
		src := filepath.Join(dir, file)
		if !fsutil.Exists(src) {
			continue
		}
		dst := filepath.Join(m.dataDir, file)
		if file == storage.SQLiteFile {
			_ = os.Remove(dst + "-wal")
			_ = os.Remove(dst + "-shm")
		}
		if err := fsutil.CopyFile(src, dst, 0600); err != nil {
			return safety, fmt.Errorf("failed to restore %s (safety backup: %s): %w", file, safety, err)
		}
	}
	m.logger.Info("backup restored", "name", name, "safety", safety)
	return safety, nil
}

// RestoreLatest restores the most recent backup.
func (m *Manager) RestoreLatest(ctx context.Context) (string, string, error) {
	backups, err := m.List()
	if err != nil {
		return "", "", err
	}
	if len(backups) == 0 {
		return "", "", fmt.Errorf("no backups available")
	}
	safety, err := m.Restore(ctx, backups[0].Name)
	return backups[0].Name, safety, err
}

// Delete removes one backup.
func (m *Manager) Delete(name string) error {
	dir, err := m.pathFor(name)
	if err != nil {
		return err
	}
	if !fsutil.Exists(dir) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(dir)
}

// Prune keeps the keep newest backups and deletes the rest.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative")
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keep:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func readManifest(dir string) (Manifest, error) {
	var manifest Manifest
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return manifest, err
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// validateFile checks that a JSON record parses. Missing files and the
// database pass.
func validateFile(path string) error {
	if filepath.Base(path) == storage.SQLiteFile {
		return nil
	}
	data, ok, err := fsutil.ReadIfExists(path)
	if err != nil || !ok {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("not valid JSON")
	}
	return nil
}

// countItems returns the length of a JSON array file.
func countItems(path string) (int, bool) {
	if filepath.Ext(path) != ".json" {
		return 0, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, false
	}
	return len(items), true
}

func statsKey(file string) string {
	return file[:len(file)-len(filepath.Ext(file))]
}
