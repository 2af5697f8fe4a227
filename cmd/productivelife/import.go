// This file contains the import subcommand handler.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"productivelife/internal/backup"
	"productivelife/internal/importer"
	"productivelife/internal/transfer"
)

const importHelpText = `productivelife import - Load data from a JSON document or another app

USAGE:
    productivelife import [OPTIONS] FILE

OPTIONS:
    --from FORMAT  Read an export from another app: todoist or taskwarrior
    --dry-run      Validate and show what would change without writing
    --no-backup    Skip the backup taken before importing
    -h, --help     Show this help message

DESCRIPTION:
    Without --from, FILE is a document written by 'productivelife export'.
    Every collection present in it (tasks, habits, goals, journalEntries,
    affirmations) replaces the current one; absent or null collections are
    left alone. The whole document is validated first, so a bad entry
    imports nothing.

    With --from, tasks are added to the current list:

    TODOIST:
      Settings → Backups gives a CSV file.
      PRIORITY 1,2 → High, 3 → Medium, 4 → Low; DATE → due date;
      "every day" → repeating task; notes are skipped.

    TASKWARRIOR:
      task export > tasks.json (JSON array or one object per line).
      priority H/M/L; due → due date; recur:daily → repeating task;
      completed tasks are imported done; deleted tasks are skipped.

    FILE may be "-" to read from stdin.

EXAMPLES:
    productivelife import productivity-data.json
    productivelife import --dry-run productivity-data.json
    productivelife import --from todoist ~/Downloads/Todoist_backup.csv
    task export | productivelife import --from taskwarrior -
`

// runImport handles the "productivelife import" subcommand.
func runImport(ctx context.Context, args []string) (err error) {
	fs := newFlagSet("import", importHelpText)
	from := fs.String("from", "", "source app: todoist or taskwarrior")
	dryRun := fs.Bool("dry-run", false, "validate without writing")
	noBackup := fs.Bool("no-backup", false, "skip the pre-import backup")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: import needs exactly one FILE\n\n")
		fs.Usage()
		return errUsage
	}

	var imp importer.Importer
	if *from != "" {
		if imp = importer.Get(*from); imp == nil {
			return fmt.Errorf("unknown format %q (supported: %s)", *from, strings.Join(importer.Formats(), ", "))
		}
	}

	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}

	if *dryRun {
		if imp != nil {
			return previewForeign(imp, data)
		}
		return previewDocument(data)
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if !*noBackup {
		mgr := backup.NewManager(cfg.GetDataDir(), version)
		name, err := mgr.Create(ctx)
		if err != nil {
			return fmt.Errorf("backup before import: %w", err)
		}
		fmt.Printf("✓ Backup created: %s\n", name)
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.close(ctx); err == nil {
			err = cerr
		}
	}()

	if imp != nil {
		res, err := importer.Run(ctx, imp, bytes.NewReader(data), sess.store)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d tasks from %s", res.Imported, imp.Name())
		if res.Skipped > 0 {
			fmt.Printf(" (%d skipped)", res.Skipped)
		}
		fmt.Println()
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", e)
		}
		return nil
	}

	warnUnknownKeys(data)
	sum, err := transfer.Import(ctx, bytes.NewReader(data), sess.store)
	if err != nil {
		return err
	}
	if len(sum.Keys) == 0 {
		fmt.Println("Nothing to import: the document has no known collections.")
		return nil
	}
	fmt.Println("✓ Import complete")
	printSummary(sum)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func previewDocument(data []byte) error {
	warnUnknownKeys(data)
	_, sum, err := transfer.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Println("Dry run: the document is valid. These collections would be replaced:")
	if len(sum.Keys) == 0 {
		fmt.Println("  (none)")
	}
	printSummary(sum)
	return nil
}

func previewForeign(imp importer.Importer, data []byte) error {
	items, skipped, err := imp.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	fmt.Printf("Dry run: %d tasks would be added from %s (%d skipped)\n", len(items), imp.Name(), skipped)
	for _, it := range items {
		mark := "[ ]"
		if it.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, it.Task.Text)
		if it.Task.Priority != "" {
			line += fmt.Sprintf(" (%s)", it.Task.Priority)
		}
		if it.Task.DueDate != "" {
			line += " due " + it.Task.DueDate
		}
		if it.Task.IsRepeating {
			line += " ↻"
		}
		fmt.Println(line)
	}
	return nil
}

func printSummary(sum transfer.Summary) {
	for _, k := range sum.Keys {
		fmt.Printf("  %-15s %d\n", k+":", sum.Counts[k])
	}
}

func warnUnknownKeys(data []byte) {
	if keys := transfer.UnknownKeys(data); len(keys) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unknown keys: %s\n", strings.Join(keys, ", "))
	}
}
