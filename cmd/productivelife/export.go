// This file contains the export and report subcommand handlers.
package main

import (
	"context"
	"fmt"
	"os"

	"productivelife/internal/reports"
	"productivelife/internal/transfer"
)

const exportHelpText = `productivelife export - Write all data to a JSON document

USAGE:
    productivelife export [OPTIONS]

OPTIONS:
    -o, --output FILE  Output file (default productivity-data.json, "-" for stdout)
    -h, --help         Show this help message

DESCRIPTION:
    Writes tasks, habits, goals, journal entries and affirmations to one
    JSON document that 'productivelife import' reads back.

EXAMPLES:
    productivelife export
    productivelife export -o ~/Dropbox/productivelife.json
    productivelife export -o - | jq '.habits[].streak'
`

// runExport handles the "productivelife export" subcommand.
func runExport(ctx context.Context, args []string) (err error) {
	fs := newFlagSet("export", exportHelpText)
	output := fs.String("output", transfer.DefaultFileName, "output file")
	fs.StringVar(output, "o", transfer.DefaultFileName, "output file (shorthand)")
	if ok, err := parseFlags(fs, args); !ok {
		return err
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

	if *output == "-" {
		return transfer.Export(os.Stdout, sess.store)
	}
	if err := transfer.ExportFile(*output, sess.store); err != nil {
		return err
	}

	snap := sess.store.Snapshot()
	fmt.Printf("✓ Exported to %s\n", *output)
	fmt.Printf("  Tasks: %d, Habits: %d, Goals: %d, Journal: %d, Affirmations: %d\n",
		len(snap.Tasks), len(snap.Habits), len(snap.Goals), len(snap.JournalEntries), len(snap.Affirmations))
	return nil
}

const reportHelpText = `productivelife report - Summarize today

USAGE:
    productivelife report [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: md (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Prints today's counts (active and finished tasks, habits done, best
    streak, goals), per-habit weekly progress and the last seven days.

EXAMPLES:
    productivelife report
    productivelife report --format json --output today.json
`

// runReport handles the "productivelife report" subcommand.
func runReport(ctx context.Context, args []string) (err error) {
	fs := newFlagSet("report", reportHelpText)
	format := fs.String("format", "md", "output format: md or json")
	fs.StringVar(format, "f", "md", "output format (shorthand)")
	output := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(output, "o", "", "write to file (shorthand)")
	if ok, err := parseFlags(fs, args); !ok {
		return err
	}

	var render func(*reports.Report) ([]byte, error)
	switch *format {
	case "md", "markdown":
		render = func(r *reports.Report) ([]byte, error) {
			return []byte(reports.FormatMarkdown(r)), nil
		}
	case "json":
		render = reports.FormatJSON
	default:
		return fmt.Errorf("unknown format %q (use md or json)", *format)
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

	out, err := render(reports.NewGenerator(sess.store).Generate())
	if err != nil {
		return err
	}
	if *output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*output, out, 0600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Printf("✓ Report written to %s\n", *output)
	return nil
}
