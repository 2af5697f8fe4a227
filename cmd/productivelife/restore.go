// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"productivelife/internal/backup"
)

const restoreHelpText = `productivelife restore - Restore data from a backup

USAGE:
    productivelife restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    -f, --force    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022)
                   Use 'productivelife backup --list' to see available backups.

DESCRIPTION:
    Replaces the data files with the ones in the backup. Every file is
    checked first, and a safety backup of the current data is taken before
    anything is overwritten.

EXAMPLES:
    productivelife restore 2025-12-15_143022
    productivelife restore --latest
    productivelife restore --force 2025-12-15_143022
`

// runRestore handles the "productivelife restore" subcommand.
func runRestore(ctx context.Context, args []string) error {
	fs := newFlagSet("restore", restoreHelpText)
	latest := fs.Bool("latest", false, "restore from most recent backup")
	force := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(force, "f", false, "skip confirmation prompt (shorthand)")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	manager := backup.NewManager(cfg.GetDataDir(), version)
	manager.SetLogger(logger)

	var name string
	switch {
	case *latest:
		backups, err := manager.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups available")
		}
		name = backups[0].Name
	case fs.NArg() == 1:
		name = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'productivelife restore BACKUP_NAME' or 'productivelife restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'productivelife backup --list' to see available backups.")
		return errUsage
	}

	info, err := manager.Get(name)
	if err != nil {
		return err
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  %s\n", statsLine(info.Stats))
	fmt.Println()

	if !*force {
		ok, err := confirm(os.Stdin, "⚠ This will overwrite your current data.\nContinue? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	fmt.Println("✓ Creating safety backup first...")
	safety, err := manager.Restore(ctx, name)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Restored successfully from %s\n", name)
	fmt.Printf("  Safety backup: %s\n", safety)
	return nil
}

// confirm prints prompt and reads a yes/no answer. Anything but y or yes
// is a no.
func confirm(in io.Reader, prompt string) (bool, error) {
	fmt.Print(prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
