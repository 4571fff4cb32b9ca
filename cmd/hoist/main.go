// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hoist is a small harness around the hoist engine: it reads one or
// more JSON-encoded dependency trees and prints the hoisted result. It
// exists to exercise the library from the command line and to regenerate
// golden fixtures; it is not the engine itself.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pelletier/go-toml"

	"github.com/sdboyer/hoist"
)

func main() {
	c := &Config{
		Args:   os.Args,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Run())
}

// Config specifies a full invocation of the hoist command.
type Config struct {
	Args           []string
	Stdout, Stderr io.Writer
}

// fileConfig is the shape of the optional -config TOML file: it carries
// engine options that are awkward to express as flags.
type fileConfig struct {
	Check      bool `toml:"check"`
	DebugLevel int  `toml:"debug_level"`
}

// Run parses arguments and executes the command, returning a process exit
// code.
func (c *Config) Run() int {
	fs := flag.NewFlagSet("hoist", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)

	var (
		configPath = fs.String("config", "", "path to a TOML file of engine options")
		batchDir   = fs.String("batch", "", "directory to walk for *.json input trees, instead of a single file on stdin/args")
		check      = fs.Bool("check", false, "run the self-consistency check after hoisting")
		debugLevel = fs.Int("debug-level", -1, "diagnostic verbosity; overridden by NM_DEBUG_LEVEL unless explicitly set")
	)
	if err := fs.Parse(c.Args[1:]); err != nil {
		return 2
	}

	opts := hoist.NewOptions()
	if *configPath != "" {
		fc, err := loadFileConfig(*configPath)
		if err != nil {
			fmt.Fprintln(c.Stderr, "hoist:", err)
			return 1
		}
		opts.Check = fc.Check
		opts.DebugLevel = fc.DebugLevel
	}
	if fs.Lookup("check").Value.String() != fs.Lookup("check").DefValue {
		opts.Check = *check
	}
	if fs.Lookup("debug-level").Value.String() != fs.Lookup("debug-level").DefValue {
		opts.DebugLevel = *debugLevel
	}
	opts.Trace = c.Stderr

	if *batchDir != "" {
		if err := runBatch(*batchDir, opts, c.Stdout, c.Stderr); err != nil {
			fmt.Fprintln(c.Stderr, "hoist:", err)
			return 1
		}
		return 0
	}

	args := fs.Args()
	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(c.Stderr, "hoist:", err)
			return 1
		}
		defer f.Close()
		r = f
	}

	if err := runOne(r, opts, c.Stdout); err != nil {
		fmt.Fprintln(c.Stderr, "hoist:", err)
		return 1
	}
	return 0
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

func runOne(r io.Reader, opts hoist.Options, w io.Writer) error {
	var in wireNode
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decoding input tree: %w", err)
	}

	out, err := hoist.Hoist(in.toNode(), opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fromOutput(out))
}

// runBatch walks dir for *.json fixtures and hoists each one in turn,
// writing a "<name>.hoisted.json" sibling for every input found. It exists
// for regenerating golden fixtures across a whole test corpus in one pass.
func runBatch(dir string, opts hoist.Options, _, stderr io.Writer) error {
	return godirwalk.Walk(dir, &godirwalk.Options{
		Unsorted: false,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".hoisted.json") {
				return nil
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			var in wireNode
			if err := json.NewDecoder(f).Decode(&in); err != nil {
				return fmt.Errorf("decoding %s: %w", path, err)
			}

			out, err := hoist.Hoist(in.toNode(), opts)
			if err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", path, err)
				return nil
			}

			outPath := strings.TrimSuffix(path, ".json") + ".hoisted.json"
			outFile, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer outFile.Close()

			enc := json.NewEncoder(outFile)
			enc.SetIndent("", "  ")
			return enc.Encode(fromOutput(out))
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			return godirwalk.SkipNode
		},
	})
}
