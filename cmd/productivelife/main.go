// Package main is the entry point for productivelife.
// It loads configuration, opens the store, and starts the TUI or runs a
// one-shot subcommand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"productivelife/internal/config"
	"productivelife/internal/logging"
	"productivelife/internal/storage"
	"productivelife/internal/ui"

	"github.com/muesli/termenv"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `productivelife - Habits, tasks and goals in your terminal

USAGE:
    productivelife [OPTIONS]
    productivelife <command> [ARGS]

COMMANDS:
    export [-o FILE]         Write all data to a JSON document
    import [--dry-run] FILE  Replace collections from a JSON document
    import --from FMT FILE   Add tasks from a todoist or taskwarrior export
    backup                   Create a backup of the data directory
    backup --list            List available backups
    backup --prune           Delete backups beyond backup.keep
    restore NAME             Restore from a specific backup
    restore --latest         Restore from the most recent backup
    report [--format FMT]    Print today's summary (md or json)
    journal add TEXT         Add a journal entry (--mood to tag it)
    journal list             List journal entries
    journal delete ID        Delete a journal entry
    affirm add TEXT          Add an affirmation
    affirm random            Print a random affirmation
    affirm list              List affirmations
    affirm delete ID         Delete an affirmation
    remind                   Notify about habits not done today
    config path|init         Show or create the config file
    version                  Show version information

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    productivelife tracks daily and weekly habits with streaks, a prioritized
    task list with due dates, and daily or weekly goals. Habits and repeating
    tasks reset at the first launch of each day.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to tasks, habits, goals
        D            Toggle dark mode
        ?            Show help overlay
        Ctrl+Z       Undo last action
        Ctrl+Y       Redo
        q            Quit

    Tasks:    a add, d/Space toggle, e edit, x delete, s sort
    Habits:   a add, Space toggle today, x delete
    Goals:    a add, d/Space toggle, x delete

DATA STORAGE:
    Data lives in ~/.productivelife/ as one JSON file per collection, or in
    productivelife.db when storage.backend is sqlite.

CONFIGURATION:
    Optional config file: ~/.config/productivelife/config.yaml
    Environment: PRODUCTIVELIFE_DATA_DIR, PRODUCTIVELIFE_BACKEND,
                 PRODUCTIVELIFE_LOG_LEVEL, PRODUCTIVELIFE_AUTOSAVE
`

// subcommands maps a command name to its handler.
var subcommands = map[string]func(ctx context.Context, args []string) error{
	"export":  runExport,
	"import":  runImport,
	"backup":  runBackup,
	"restore": runRestore,
	"report":  runReport,
	"journal": runJournal,
	"affirm":  runAffirm,
	"remind":  runRemind,
	"config":  runConfig,
	"version": func(context.Context, []string) error {
		printVersion()
		return nil
	},
	"help": func(context.Context, []string) error {
		fmt.Print(helpText)
		return nil
	},
}

// errUsage means the handler already printed usage; exit non-zero quietly.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if run, ok := subcommands[os.Args[1]]; ok {
			if err := run(ctx, os.Args[2:]); err != nil {
				stop()
				exit(os.Args[1], err)
			}
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}
	if *showHelp {
		fmt.Print(helpText)
		return
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	if err := runTUI(ctx); err != nil {
		stop()
		exit("running app", err)
	}
}

func exit(what string, err error) {
	if !errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	}
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("productivelife version %s\n", version)
	fmt.Printf("  commit: %s\n", commit)
	fmt.Printf("  built:  %s\n", date)
}

// runTUI opens the store with file logging and runs the interactive app.
func runTUI(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, logFile, err := logging.OpenFile(cfg.GetDataDir(), level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := openStore(ctx, cfg, logger, termenv.HasDarkBackground)
	if err != nil {
		return err
	}
	defer func() {
		// The signal context may already be canceled; the final flush still has to land.
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Error("closing store", "err", err)
			fmt.Fprintf(os.Stderr, "Error saving data: %v\n", err)
		}
	}()

	styles := ui.NewStyles(&cfg.Theme, store.DarkMode())
	return ui.Run(ctx, store, styles, ui.AppConfigFrom(cfg))
}

// openStore opens the configured backend and loads the store, running the
// daily rollover. darkDefault may be nil.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, darkDefault func() bool) (*storage.Store, error) {
	dir := cfg.GetDataDir()

	var backend storage.Backend
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		b, err := storage.OpenSQLite(ctx, filepath.Join(dir, storage.SQLiteFile))
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		b, err := storage.NewFileBackend(dir, logger)
		if err != nil {
			return nil, err
		}
		backend = b
	}

	store, err := storage.Open(ctx, backend, storage.Options{
		Logger:          logger,
		ManualFlush:     !cfg.Storage.Autosave,
		DefaultDarkMode: darkDefault,
	})
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("opening data: %w", err)
	}
	return store, nil
}

// session is what most subcommands need: config, a stderr logger and an
// open store.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *storage.Store
}

func openSession(ctx context.Context) (*session, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := openStore(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: store}, nil
}

// close flushes the store. It uses a context that outlives cancellation so
// an interrupted command still saves what it changed.
func (s *session) close(ctx context.Context) error {
	return s.store.Close(context.WithoutCancel(ctx))
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.Stderr(level), nil
}

// newFlagSet builds a flag set that prints help on -h and reports parse
// errors instead of exiting.
func newFlagSet(name, help string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, help)
	}
	return fs
}

// parseFlags parses args, mapping -h to a clean exit.
func parseFlags(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, errUsage
	}
	return true, nil
}
