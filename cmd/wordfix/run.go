package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/cli"
	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/config"
	"github.com/bastiangx/wordfix/pkg/corrector"
	"github.com/bastiangx/wordfix/pkg/customdict"
	"github.com/bastiangx/wordfix/pkg/dataset"
	"github.com/bastiangx/wordfix/pkg/dictionary"
	"github.com/bastiangx/wordfix/pkg/evaluate"
	"github.com/bastiangx/wordfix/pkg/httpapi"
	"github.com/bastiangx/wordfix/pkg/server"
)

const (
	baselineDepth = 2
	redisTimeout  = 3 * time.Second
)

// app holds what every mode needs: the config, the derived pipeline
// settings and the resolver for relative data paths.
type app struct {
	cfg      *config.Config
	settings corrector.Settings
	paths    *utils.PathResolver
}

func newApp(cfg *config.Config) (*app, error) {
	settings, err := cfg.CorrectorSettings()
	if err != nil {
		return nil, err
	}
	pr, err := utils.NewPathResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	return &app{cfg: cfg, settings: settings, paths: pr}, nil
}

func (a *app) path(p string) string {
	return a.paths.ResolveFile(p)
}

// loadDictionary reads the words file, keeping words of the configured
// script, and merges the Redis custom words when a server is configured.
func (a *app) loadDictionary(ctx context.Context) (*dictionary.Dictionary, error) {
	path := a.path(a.cfg.Data.Words)
	dict, err := dictionary.Load(path, a.settings.Script.Accepts)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d words from %s", dict.Len(), path)

	if a.cfg.Redis.Addr == "" {
		return dict, nil
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	added, err := a.customWords().LoadInto(ctx, dict, a.settings.Script.Accepts)
	if err != nil {
		log.Warnf("Skipping custom words: %v", err)
		return dict, nil
	}
	log.Debugf("Added %d custom words from redis %s", added, a.cfg.Redis.Addr)
	return dict, nil
}

func (a *app) customWords() *customdict.CustomDict {
	return customdict.Dial(customdict.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
		Key:      a.cfg.Redis.Key,
	})
}

func (a *app) loadPairs() ([]dataset.Pair, error) {
	var pairs []dataset.Pair
	err := dataset.OpenFunc(a.path(a.cfg.Data.Train), func(r io.Reader) error {
		var err error
		pairs, err = dataset.ReadPairs(r)
		return err
	})
	return pairs, err
}

func (a *app) buildCorrector(ctx context.Context) (*corrector.Corrector, *dictionary.Dictionary, error) {
	dict, err := a.loadDictionary(ctx)
	if err != nil {
		return nil, nil, err
	}
	pairs, err := a.loadPairs()
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	c := corrector.Build(dict, pairs, a.settings)
	log.Debugf("Corrector built from %d words and %d pairs in %v", dict.Len(), len(pairs), time.Since(start))
	return c, dict, nil
}

// runBatch corrects the test table and writes the prediction table.
func (a *app) runBatch(ctx context.Context) error {
	c, _, err := a.buildCorrector(ctx)
	if err != nil {
		return err
	}

	var words []string
	err = dataset.OpenFunc(a.path(a.cfg.Data.Test), func(r io.Reader) error {
		var err error
		words, err = dataset.ReadColumn(r, dataset.ColumnID)
		return err
	})
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := c.CorrectAll(ctx, words, a.cfg.Server.Workers)
	if err != nil {
		return err
	}
	preds := make([]dataset.Prediction, len(results))
	changed := 0
	for i, r := range results {
		preds[i] = dataset.Prediction{ID: words[i], Predicted: r.Corrected}
		if r.Changed {
			changed++
		}
	}

	out := a.cfg.Data.Output
	if err := dataset.CreateFunc(out, func(w io.Writer) error {
		return dataset.WritePredictions(w, preds)
	}); err != nil {
		return err
	}
	log.Infof("Corrected %d of %d words in %v, wrote %s", changed, len(words), time.Since(start), out)
	return nil
}

// evaluate prints the mean distance of the no-fix and prediction tables to
// the training labels.
func (a *app) evaluate(withBaseline bool) error {
	pairs, err := a.loadPairs()
	if err != nil {
		return err
	}
	labels := evaluate.Labels(pairs)

	observed := make([]string, len(pairs))
	for i, p := range pairs {
		observed[i] = p.Observed
	}

	noFix := evaluate.NoFix(observed)
	if path := a.path(a.cfg.Data.NoFix); utils.FileExists(path) {
		if noFix, err = readPredictions(path); err != nil {
			return err
		}
	} else {
		log.Debugf("No-fix table %s not found, scoring unchanged training words", path)
	}

	preds, err := readPredictions(a.path(a.cfg.Data.Output))
	if err != nil {
		return err
	}

	report, err := evaluate.Evaluate(labels, noFix, preds)
	if err != nil {
		return err
	}

	if withBaseline {
		dict, err := a.loadDictionary(context.Background())
		if err != nil {
			return err
		}
		b := evaluate.NewBaseline(dict, a.settings.Script, baselineDepth)
		if report.Baseline, err = evaluate.MeanDistance(labels, b.Predict(observed)); err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		report.HasBaseline = true
	}

	fmt.Println(report)
	return nil
}

func readPredictions(path string) ([]dataset.Prediction, error) {
	var preds []dataset.Prediction
	err := dataset.OpenFunc(path, func(r io.Reader) error {
		var err error
		preds, err = dataset.ReadPredictions(r)
		return err
	})
	return preds, err
}

// export writes the loaded dictionary in the binary format.
func (a *app) export(path string) error {
	dict, err := a.loadDictionary(context.Background())
	if err != nil {
		return err
	}
	if err := dictionary.SaveBinary(path, dict); err != nil {
		return err
	}
	log.Infof("Wrote %d words to %s", dict.Len(), path)
	return nil
}

// editCustomWords adds and removes words of the Redis custom word set.
func (a *app) editCustomWords(ctx context.Context, add, remove string) error {
	if a.cfg.Redis.Addr == "" {
		return errors.New("no redis server configured: set [redis] addr")
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	cd := a.customWords()
	if add != "" {
		if err := cd.Add(ctx, add); err != nil {
			return err
		}
	}
	if remove != "" {
		if err := cd.Remove(ctx, remove); err != nil {
			return err
		}
	}
	words, err := cd.All(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d custom words in %s\n", len(words), a.cfg.Redis.Key)
	return nil
}

// CLI would be mainly used for testing and dbg purposes.
func (a *app) runCLI(ctx context.Context) error {
	c, _, err := a.buildCorrector(ctx)
	if err != nil {
		return err
	}
	exitOnCancel(ctx)
	h := cli.NewInputHandler(c, os.Stdin, os.Stdout, a.cfg.Server.MaxWordLength)
	if err := h.Start(); err != nil {
		return fmt.Errorf("CLI error: %w", err)
	}
	return nil
}

func (a *app) runIPC(ctx context.Context) error {
	c, _, err := a.buildCorrector(ctx)
	if err != nil {
		return err
	}
	exitOnCancel(ctx)
	showStartupInfo("ipc", "stdin/stdout")

	srv := server.NewServer(c, os.Stdin, os.Stdout, a.cfg.Server.MaxWordLength)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("IPC server: %w", err)
	}
	return nil
}

func (a *app) runHTTP(ctx context.Context) error {
	c, dict, err := a.buildCorrector(ctx)
	if err != nil {
		return err
	}
	router := httpapi.NewRouter(httpapi.NewHandlers(c, httpapi.Options{
		MaxWordLength: a.cfg.Server.MaxWordLength,
		Workers:       a.cfg.Server.Workers,
		Dictionary:    dict,
	}))
	showStartupInfo("http", a.cfg.Server.HTTPAddr)
	return httpapi.Serve(ctx, a.cfg.Server.HTTPAddr, router)
}

// exitOnCancel exits the process once ctx is cancelled. Blocking stdin
// reads cannot be interrupted otherwise.
func exitOnCancel(ctx context.Context) {
	go func() {
		<-ctx.Done()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(mode, addr string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=========")
	println(" WordFix ")
	println("=========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("mode: %s ( %s )", mode, addr)
	log.Info("status: ready")
	println("=========")

	log.SetLevel(currentLevel)
}
