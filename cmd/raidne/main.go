// Raidne is a small turn-based dungeon crawl.
// Usage: raidne [--version] [--plain] [--script <file>] [--trace] [--seed <n>]
//
// Settings not given as flags come from RAIDNE_* environment variables.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/eevee/raidne/cli"
	"github.com/eevee/raidne/config"
	"github.com/eevee/raidne/engine"
	"github.com/eevee/raidne/engine/things"
	"github.com/eevee/raidne/loader"
	"github.com/eevee/raidne/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: raidne [--version] [--plain] [--script <file>] [--trace] [--seed <n>]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error in configuration: %v", err)
	}

	plain := false
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("raidne %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			cfg.Trace = true
		case "--script":
			if i+1 >= len(args) {
				config.Exitf("--script requires a file path")
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				config.Exitf("--seed requires a number")
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				config.Exitf("--seed %q: not a number", args[i])
			}
			cfg.Seed = seed
		default:
			config.Exitf("%s", usage)
		}
	}

	// Load content: the built-in set, plus a directory of overrides if one
	// is configured.
	var cat *things.Catalog
	if cfg.ContentDir != "" {
		cat, err = loader.Load(cfg.ContentDir)
	} else {
		cat, err = loader.Default()
	}
	if err != nil {
		config.Exitf("Error loading content: %v", err)
	}

	d, err := engine.New(engine.Options{
		Catalog:      cat,
		RNG:          engine.NewRNG(cfg.ResolvedSeed()),
		Size:         cfg.FloorSize(),
		MinPartition: cfg.MinPartition,
	})
	if err != nil {
		config.Exitf("Error generating dungeon: %v", err)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			config.Exitf("Error opening script: %v", err)
		}
		defer f.Close()
		c := cli.New(d)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(d)
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	if err := tui.Run(d, cfg.Trace); err != nil {
		config.Exitf("Error: %v", err)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
