// This file contains the config subcommand handler.
package main

import (
	"context"
	"fmt"
	"os"

	"productivelife/internal/config"
	"productivelife/internal/fsutil"
)

const configHelpText = `productivelife config - Inspect or create the config file

USAGE:
    productivelife config path
    productivelife config init [--force]

DESCRIPTION:
    'path' prints where the config file is read from and the resolved data
    directory. 'init' writes a config file with every default spelled out;
    it refuses to overwrite an existing file unless --force is given.
`

// runConfig handles the "productivelife config" subcommand.
func runConfig(_ context.Context, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Print(configHelpText)
		if len(args) == 0 {
			return errUsage
		}
		return nil
	}

	switch args[0] {
	case "path":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Printf("config: %s\n", config.Path())
		fmt.Printf("data:   %s\n", cfg.GetDataDir())
		return nil
	case "init":
		fs := newFlagSet("config init", configHelpText)
		force := fs.Bool("force", false, "overwrite an existing config file")
		if ok, err := parseFlags(fs, args[1:]); !ok {
			return err
		}
		path := config.Path()
		if path == "" {
			return fmt.Errorf("no config directory available")
		}
		if fsutil.Exists(path) && !*force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.Default().Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", path)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown config command %q\n\n", args[0])
		fmt.Fprint(os.Stderr, configHelpText)
		return errUsage
	}
}
