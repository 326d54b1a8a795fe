// Copyright 2025 The WordFix Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordfix spelling corrector: a batch driver, an
evaluation command, a MessagePack IPC server, an HTTP API and a CLI [DBG]
mode.

WordFix corrects misspelled words against a frequency dictionary. An error
model is trained on pairs of observed and expected words; a bounded fuzzy
search over a trie of dictionary words then proposes corrections guided by
that model, and the most frequent candidate that clears two frequency
thresholds wins.

# Usage

Correct every word of the test table and write the predictions:

	wordfix

Score the predictions against the training labels, with a baseline model:

	wordfix -eval -baseline

Run in CLI mode for interactive testing:

	wordfix -c -d

Serve corrections over stdin/stdout or HTTP:

	wordfix -ipc
	wordfix -http

# Configuration

Runtime configuration is read from wordfix.toml in the user config directory
(or the file given with -config). The file is created with defaults if it
does not exist; keys that are missing or mistyped keep their defaults.

	[search]
	max_changes = 1
	replacements = true

	[filter]
	absolute_threshold = 0.0001
	relative_threshold = 2.5

	[data]
	words = "data/words.csv"
	script = "rus"

Relative data paths are looked up in the working directory, next to the
executable and in the config directory.

# Dictionaries

The words file is either a CSV table with Id and Freq columns or a binary
file (.bin) written by -export. Binary files are memory mapped. When
[redis] addr is set, the words of the Redis set named by [redis] key are
added with a very high frequency so they are never corrected away; -add and
-remove edit that set.

# IPC Protocol

Requests and replies are MessagePack maps:

	{"id": "req1", "w": "малоко"}
	{"id": "req1", "o": "малоко", "c": "молоко", "ch": true, "s": [{"w": "молоко", "f": 5021, "r": 1}], "t": 212}

# HTTP API

	POST /v1/correct         {"word": "малоко"}
	POST /v1/correct/batch   {"words": ["малоко", "кот"]}
	GET  /v1/health
	GET  /metrics

# Command Line Flags

	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode
	-ipc
	    Serve MessagePack requests on stdin/stdout
	-http
	    Serve the HTTP API on [server] http_addr
	-eval
	    Score the prediction table against the training labels
	-baseline
	    With -eval, also score a symmetric-delete baseline model
	-export string
	    Write the loaded dictionary as a binary file and exit
	-add string, -remove string
	    Edit the Redis custom word set and exit
	-words, -train, -test, -out string
	    Override the matching [data] paths
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/pkg/config"
)

const (
	Version = "0.3.0"
	AppName = "wordfix"
	gh      = "https://github.com/bastiangx/wordfix"
)

// options collects the parsed command line.
type options struct {
	configPath string
	debug      bool
	cliMode    bool
	ipcMode    bool
	httpMode   bool
	evalMode   bool
	baseline   bool
	exportPath string
	addWord    string
	removeWord string
	words      string
	train      string
	test       string
	out        string
}

// main parses flags, loads the config and hands over to one of the modes.
// main() does not implement logic for them and only manages the flow.
func main() {
	var opts options
	showVersion := flag.Bool("version", false, "Show current version")
	flag.StringVar(&opts.configPath, "config", "", "Path to a custom config file")
	flag.BoolVar(&opts.debug, "d", false, "Toggle debug mode")
	flag.BoolVar(&opts.cliMode, "c", false, "Run CLI -- useful for testing and debugging")
	flag.BoolVar(&opts.ipcMode, "ipc", false, "Serve MessagePack requests on stdin/stdout")
	flag.BoolVar(&opts.httpMode, "http", false, "Serve the HTTP API")
	flag.BoolVar(&opts.evalMode, "eval", false, "Score predictions against the training labels")
	flag.BoolVar(&opts.baseline, "baseline", false, "With -eval, also score the baseline model")
	flag.StringVar(&opts.exportPath, "export", "", "Write the dictionary as a binary file and exit")
	flag.StringVar(&opts.addWord, "add", "", "Add a word to the Redis custom word set and exit")
	flag.StringVar(&opts.removeWord, "remove", "", "Remove a word from the Redis custom word set and exit")
	flag.StringVar(&opts.words, "words", "", "Dictionary file (.csv or .bin)")
	flag.StringVar(&opts.train, "train", "", "Training table with Id and Expected columns")
	flag.StringVar(&opts.test, "test", "", "Test table with an Id column")
	flag.StringVar(&opts.out, "out", "", "Prediction table to write")
	flag.Parse()

	if *showVersion {
		showVersionInfo()
		os.Exit(0)
	}

	if opts.debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, usedPath, err := config.LoadConfigWithPriority(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedPath))
	opts.override(&cfg.Data)

	app, err := newApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	switch {
	case opts.addWord != "" || opts.removeWord != "":
		err = app.editCustomWords(ctx, opts.addWord, opts.removeWord)
	case opts.evalMode:
		err = app.evaluate(opts.baseline)
	case opts.exportPath != "":
		err = app.export(opts.exportPath)
	case opts.cliMode:
		log.SetReportTimestamp(false)
		err = app.runCLI(ctx)
	case opts.ipcMode:
		err = app.runIPC(ctx)
	case opts.httpMode:
		err = app.runHTTP(ctx)
	default:
		err = app.runBatch(ctx)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// override replaces the [data] paths given on the command line.
func (o options) override(d *config.DataConfig) {
	for dst, src := range map[*string]string{
		&d.Words:  o.words,
		&d.Train:  o.train,
		&d.Test:   o.test,
		&d.Output: o.out,
	} {
		if src != "" {
			*dst = src
		}
	}
}

// showVersionInfo prints the styled version banner.
func showVersionInfo() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordFix ] Fixes misspelled words with a learned error model")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
