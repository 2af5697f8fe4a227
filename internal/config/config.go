// Package config handles configuration loading and defaults for productivelife.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/productivelife/config.yaml) and then from PRODUCTIVELIFE_* variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"productivelife/internal/fsutil"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const appName = "productivelife"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.productivelife)
	DataDir string `yaml:"data_dir,omitempty"`

	Storage StorageConfig `yaml:"storage,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	UX UXConfig `yaml:"ux,omitempty"`

	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`

	Backup BackupConfig `yaml:"backup,omitempty"`
}

// StorageConfig selects where records are kept.
type StorageConfig struct {
	// Backend is "json" (one file per record) or "sqlite"
	Backend string `yaml:"backend,omitempty"`

	// Autosave writes every change through immediately. When false, changes
	// are written when the app exits.
	Autosave bool `yaml:"autosave,omitempty"`
}

// ThemeConfig defines color settings. An empty value keeps the palette
// chosen by dark mode.
type ThemeConfig struct {
	Primary    string `yaml:"primary,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Muted      string `yaml:"muted,omitempty"`
	Background string `yaml:"background,omitempty"`
	Text       string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings, e.g. "q,ctrl+c".
type KeysConfig struct {
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"
	Pane1    string `yaml:"pane_1,omitempty"`    // default: "1"
	Pane2    string `yaml:"pane_2,omitempty"`    // default: "2"
	Pane3    string `yaml:"pane_3,omitempty"`    // default: "3"
	DarkMode string `yaml:"dark_mode,omitempty"` // default: "D"

	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	AddTask    string `yaml:"add_task,omitempty"`    // default: "a"
	ToggleTask string `yaml:"toggle_task,omitempty"` // default: "d,enter,space"
	DeleteTask string `yaml:"delete_task,omitempty"` // default: "x"
	EditTask   string `yaml:"edit_task,omitempty"`   // default: "e"
	SortTasks  string `yaml:"sort_tasks,omitempty"`  // default: "s"

	AddHabit    string `yaml:"add_habit,omitempty"`    // default: "a"
	ToggleHabit string `yaml:"toggle_habit,omitempty"` // default: "d,enter,space"
	DeleteHabit string `yaml:"delete_habit,omitempty"` // default: "x"

	AddGoal    string `yaml:"add_goal,omitempty"`    // default: "a"
	ToggleGoal string `yaml:"toggle_goal,omitempty"` // default: "d,enter,space"
	DeleteGoal string `yaml:"delete_goal,omitempty"` // default: "x"

	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"

	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true
	HideHelpBar      bool `yaml:"hide_help_bar,omitempty"`     // default: false
	ShowAffirmation  bool `yaml:"show_affirmation,omitempty"`  // default: true

	// NarrowLayoutThreshold is the terminal width below which panes stack
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// NotificationConfig defines desktop notification settings for `remind`.
type NotificationConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
	Sound   bool `yaml:"sound,omitempty"`
}

// LogConfig sets the minimum log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// BackupConfig controls `backup --prune`.
type BackupConfig struct {
	// Keep is how many backups survive a prune
	Keep int `yaml:"keep,omitempty"`
}

// envOverrides are the settings that can be set from the environment.
type envOverrides struct {
	DataDir  string `env:"PRODUCTIVELIFE_DATA_DIR"`
	Backend  string `env:"PRODUCTIVELIFE_BACKEND"`
	LogLevel string `env:"PRODUCTIVELIFE_LOG_LEVEL"`
	Autosave *bool  `env:"PRODUCTIVELIFE_AUTOSAVE"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{
			Backend:  BackendJSON,
			Autosave: true,
		},
		Theme: ThemeConfig{
			Primary: "#7C3AED", // Violet
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			ShowAffirmation:       true,
			NarrowLayoutThreshold: 80,
		},
		Log:    LogConfig{Level: "info"},
		Backup: BackupConfig{Keep: 10},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, "."+appName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the config file location, or "" when no home directory is known.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads configuration from disk, merges it over the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func Load() (*Config, error) {
	cfg := Default()

	if path := Path(); path != "" {
		data, ok, err := fsutil.ReadIfExists(path)
		if err != nil {
			return nil, err
		}
		if ok {
			var userCfg Config
			if err := yaml.Unmarshal(data, &userCfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			var doc yaml.Node
			_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails
			cfg.mergeFromYAML(&userCfg, &doc)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}
	setString(&c.DataDir, o.DataDir)
	setString(&c.Storage.Backend, strings.ToLower(o.Backend))
	setString(&c.Log.Level, strings.ToLower(o.LogLevel))
	if o.Autosave != nil {
		c.Storage.Autosave = *o.Autosave
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Backup.Keep < 0 {
		return fmt.Errorf("backup.keep must be non-negative, got %d", c.Backup.Keep)
	}
	return nil
}

// ParseLevel maps a log.level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
	}
	return level, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// mergeNonEmpty applies non-empty strings and positive ints from other to c.
// Booleans need presence-aware merging and are left alone.
func (c *Config) mergeNonEmpty(other *Config) {
	setString(&c.DataDir, other.DataDir)
	setString(&c.Storage.Backend, other.Storage.Backend)
	setString(&c.Log.Level, other.Log.Level)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Background, other.Theme.Background)
	setString(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, &other.Keys
	for dst, v := range map[*string]string{
		&k.Quit: o.Quit, &k.Help: o.Help, &k.NextPane: o.NextPane,
		&k.Pane1: o.Pane1, &k.Pane2: o.Pane2, &k.Pane3: o.Pane3, &k.DarkMode: o.DarkMode,
		&k.Up: o.Up, &k.Down: o.Down, &k.Top: o.Top, &k.Bottom: o.Bottom,
		&k.AddTask: o.AddTask, &k.ToggleTask: o.ToggleTask, &k.DeleteTask: o.DeleteTask,
		&k.EditTask: o.EditTask, &k.SortTasks: o.SortTasks,
		&k.AddHabit: o.AddHabit, &k.ToggleHabit: o.ToggleHabit, &k.DeleteHabit: o.DeleteHabit,
		&k.AddGoal: o.AddGoal, &k.ToggleGoal: o.ToggleGoal, &k.DeleteGoal: o.DeleteGoal,
		&k.Confirm: o.Confirm, &k.Cancel: o.Cancel,
		&k.Undo: o.Undo, &k.Redo: o.Redo,
	} {
		setString(dst, v)
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
	if other.Backup.Keep > 0 {
		c.Backup.Keep = other.Backup.Keep
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a node tree, presence is unknown and defaults win.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	bools := []struct {
		path []string
		dst  *bool
		v    bool
	}{
		{[]string{"storage", "autosave"}, &c.Storage.Autosave, other.Storage.Autosave},
		{[]string{"ux", "confirm_deletions"}, &c.UX.ConfirmDeletions, other.UX.ConfirmDeletions},
		{[]string{"ux", "hide_help_bar"}, &c.UX.HideHelpBar, other.UX.HideHelpBar},
		{[]string{"ux", "show_affirmation"}, &c.UX.ShowAffirmation, other.UX.ShowAffirmation},
		{[]string{"notifications", "enabled"}, &c.Notifications.Enabled, other.Notifications.Enabled},
		{[]string{"notifications", "sound"}, &c.Notifications.Sound, other.Notifications.Sound},
	}
	for _, b := range bools {
		if yamlHasPath(doc, b.path...) {
			*b.dst = b.v
		}
	}
	// An explicit zero keeps no backups on prune.
	if yamlHasPath(doc, "backup", "keep") {
		c.Backup.Keep = other.Backup.Keep
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	if c.DataDir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataDir
	}
	if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, c.DataDir[2:])
		}
	}
	return c.DataDir
}
