// This file contains the journal and affirm subcommand handlers.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"productivelife/internal/affirm"
)

const journalHelpText = `productivelife journal - Write and read journal entries

USAGE:
    productivelife journal add [--mood MOOD] TEXT...
    productivelife journal list [-n N]
    productivelife journal delete ID

DESCRIPTION:
    Entries are dated with today's local date. IDs may be shortened to any
    unique prefix shown by 'journal list'.

EXAMPLES:
    productivelife journal add --mood calm "Long walk after lunch"
    productivelife journal list -n 5
`

// runJournal handles the "productivelife journal" subcommand.
func runJournal(ctx context.Context, args []string) (err error) {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(journalHelpText)
		if len(args) == 0 {
			return errUsage
		}
		return nil
	}

	fs := newFlagSet("journal "+args[0], journalHelpText)
	var mood *string
	var limit *int
	switch args[0] {
	case "add":
		mood = fs.String("mood", "", "mood tag")
	case "list":
		limit = fs.Int("n", 0, "show only the N newest entries")
	case "delete", "rm":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown journal command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, journalHelpText)
		return errUsage
	}
	if ok, err := parseFlags(fs, args[1:]); !ok {
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

	switch args[0] {
	case "add":
		text := strings.Join(fs.Args(), " ")
		e, err := sess.store.AddJournalEntry(ctx, text, *mood)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Journal entry added for %s (%s)\n", e.Date, shortID(e.ID))
	case "list":
		entries := sess.store.JournalEntries()
		if len(entries) == 0 {
			fmt.Println("No journal entries yet.")
			return nil
		}
		if *limit > 0 && len(entries) > *limit {
			entries = entries[len(entries)-*limit:]
		}
		for _, e := range entries {
			tag := ""
			if e.Mood != "" {
				tag = " [" + e.Mood + "]"
			}
			fmt.Printf("%s  %s%s\n    %s\n", shortID(e.ID), e.Date, tag, e.Content)
		}
	default:
		if fs.NArg() != 1 {
			return fmt.Errorf("journal delete needs one ID")
		}
		entries := sess.store.JournalEntries()
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ID
		}
		id, err := resolveID(ids, fs.Arg(0))
		if err != nil {
			return err
		}
		if err := sess.store.DeleteJournalEntry(ctx, id); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted journal entry %s\n", shortID(id))
	}
	return nil
}

const affirmHelpText = `productivelife affirm - Manage affirmations

USAGE:
    productivelife affirm add TEXT...
    productivelife affirm random
    productivelife affirm list
    productivelife affirm delete ID

DESCRIPTION:
    One affirmation is picked at random for the top of the dashboard each
    day. 'random' prints one the same way.
`

// runAffirm handles the "productivelife affirm" subcommand.
func runAffirm(ctx context.Context, args []string) (err error) {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(affirmHelpText)
		if len(args) == 0 {
			return errUsage
		}
		return nil
	}
	switch args[0] {
	case "add", "random", "list", "delete", "rm":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown affirm command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, affirmHelpText)
		return errUsage
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

	rest := args[1:]
	switch args[0] {
	case "add":
		a, err := sess.store.AddAffirmation(ctx, strings.Join(rest, " "))
		if err != nil {
			return err
		}
		fmt.Printf("✓ Affirmation added (%s)\n", shortID(a.ID))
	case "random":
		fmt.Println(affirm.New().Text(sess.store.Affirmations()))
	case "list":
		affs := sess.store.Affirmations()
		if len(affs) == 0 {
			fmt.Println("No affirmations yet. Add one with 'productivelife affirm add TEXT'.")
			return nil
		}
		for _, a := range affs {
			fmt.Printf("%s  %s\n", shortID(a.ID), a.Text)
		}
	default:
		if len(rest) != 1 {
			return fmt.Errorf("affirm delete needs one ID")
		}
		affs := sess.store.Affirmations()
		ids := make([]string, len(affs))
		for i, a := range affs {
			ids[i] = a.ID
		}
		id, err := resolveID(ids, rest[0])
		if err != nil {
			return err
		}
		if err := sess.store.DeleteAffirmation(ctx, id); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted affirmation %s\n", shortID(id))
	}
	return nil
}

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveID expands a unique prefix to the full ID.
func resolveID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("empty ID")
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("ID prefix %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no entry with ID %q", prefix)
	}
	return match, nil
}
