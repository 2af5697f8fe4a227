// This file contains the backup subcommand handler.
package main

import (
	"context"
	"fmt"
	"time"

	"productivelife/internal/backup"
)

const backupHelpText = `productivelife backup - Create and manage backups

USAGE:
    productivelife backup [OPTIONS]

OPTIONS:
    -l, --list      List available backups
    --prune         Delete all but the newest backup.keep backups
    --keep N        Override backup.keep for --prune
    -h, --help      Show this help message

DESCRIPTION:
    Creates a timestamped copy of every data file (tasks, habits, goals,
    journal, affirmations, settings, or the SQLite database). Backups live in
    ~/.productivelife/backups/ and can be restored with 'productivelife restore'.

EXAMPLES:
    productivelife backup
    productivelife backup --list
    productivelife backup --prune --keep 5
`

// runBackup handles the "productivelife backup" subcommand.
func runBackup(ctx context.Context, args []string) error {
	fs := newFlagSet("backup", backupHelpText)
	list := fs.Bool("list", false, "list available backups")
	fs.BoolVar(list, "l", false, "list available backups (shorthand)")
	prune := fs.Bool("prune", false, "delete old backups")
	keep := fs.Int("keep", -1, "backups to keep when pruning")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	manager := backup.NewManager(cfg.GetDataDir(), version)
	manager.SetLogger(logger)

	switch {
	case *list:
		return listBackups(manager)
	case *prune:
		n := cfg.Backup.Keep
		if *keep >= 0 {
			n = *keep
		}
		deleted, err := manager.Prune(n)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Deleted %d old backups (keeping %d)\n", deleted, n)
		return nil
	default:
		return createBackup(ctx, manager)
	}
}

func createBackup(ctx context.Context, manager *backup.Manager) error {
	name, err := manager.Create(ctx)
	if err != nil {
		return err
	}
	info, err := manager.Get(name)
	if err != nil {
		return fmt.Errorf("reading backup info: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  %s\n", statsLine(info.Stats))
	fmt.Printf("  Location: %s\n", info.Path)
	return nil
}

func listBackups(manager *backup.Manager) error {
	backups, err := manager.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'productivelife backup' to create one.")
		return nil
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   %s\n", b.Name, formatAge(b.CreatedAt, time.Now()), statsLine(b.Stats))
	}
	return nil
}

// statsLine renders the per-collection counts a backup manifest records.
// SQLite backups carry no counts.
func statsLine(stats map[string]int) string {
	if len(stats) == 0 {
		return "(database backup)"
	}
	return fmt.Sprintf("Tasks: %d, Habits: %d, Goals: %d, Journal: %d",
		stats["tasks"], stats["habits"], stats["goals"], stats["journal"])
}

// formatAge returns a human-readable age string.
func formatAge(t, now time.Time) string {
	d := now.Sub(t)

	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return plural(int(d.Hours()/24/7), "week")
	}
}
