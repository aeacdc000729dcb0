package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/alecthomas/kingpin.v2"

	"osuchart/bundle"
	"osuchart/config"
	"osuchart/dotosu"
	"osuchart/store"
)

var (
	app       = kingpin.New("osuchart", "Decode osu! beatmap sets and index their difficulties.")
	paths     = app.Arg("bundle", ".osz archive or unpacked set directory").Required().Strings()
	configDir = app.Flag("config", "Directory holding "+config.FileName).Default(".").Short('c').String()
	logLevel  = app.Flag("log-level", "trace, debug, info, warn or error").Short('l').String()
	outDir    = app.Flag("out", "Directory for summaries and failure reports").Short('o').String()
	workers   = app.Flag("workers", "Difficulties decoded in parallel").Short('w').Int()
	noStore   = app.Flag("no-store", "Do not write the difficulty index").Bool()
)

func main() {
	app.Version("0.1.0")
	kingpin.MustParse(app.Parse(os.Args[1:]))

	cfgErr := config.Load(*configDir)
	if cfgErr != nil && !config.IsNotFound(cfgErr) {
		fmt.Fprintln(os.Stderr, cfgErr)
		os.Exit(1)
	}
	if *logLevel != "" {
		config.Set("logLevel", *logLevel)
	}
	if *outDir != "" {
		config.Set("output.dir", *outDir)
	}
	if *workers > 0 {
		config.Set("workers", *workers)
	}
	if *noStore {
		config.Set("store.enabled", false)
	}
	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := newLogger(os.Stdout, cfg.LogLevel)
	if cfgErr != nil {
		log.Debug().Str("dir", *configDir).Msg("no config file, using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, cfg, *paths); err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, cfg config.Config, paths []string) error {
	s := &session{
		log:    log,
		parser: dotosu.NewParser(log, cfg.Workers),
		outDir: cfg.Output.Dir,
		now:    time.Now,
	}
	if cfg.Store.Enabled {
		index, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening index %s: %w", cfg.Store.Path, err)
		}
		defer index.Close()
		s.index = index
	}

	failed := 0
	for _, path := range paths {
		report, err := s.processBundle(ctx, path)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			failed++
			log.Error().Str("bundle", path).Err(err).Msg("bundle failed")
			continue
		}
		log.Info().
			Str("bundle", report.Bundle).
			Int("decoded", len(report.Difficulties)).
			Int("failed", len(report.Failed)).
			Msg("bundle done")
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d bundles could not be read", failed, len(paths))
	}
	return nil
}

// Report is the per-bundle output file.
type Report struct {
	Bundle       string        `json:"bundle"`
	Difficulties []Summary     `json:"difficulties"`
	Failed       []FailedEntry `json:"failed,omitempty"`
}

type FailedEntry struct {
	Entry  string `json:"entry"`
	Reason string `json:"reason"`
}

type session struct {
	log    zerolog.Logger
	parser *dotosu.Parser
	index  *store.Store // nil when disabled
	outDir string       // empty when disabled
	now    func() time.Time
}

// processBundle decodes and summarizes every difficulty of the bundle at
// path. Failing difficulties end up in the report, only an unreadable bundle
// or a cancelled ctx is an error.
func (s *session) processBundle(ctx context.Context, path string) (*Report, error) {
	b, err := bundle.Open(path)
	if err != nil {
		return nil, err
	}
	log := s.log.With().Str("bundle", b.Name).Logger()
	log.Debug().Int("files", b.Len()).Msg("bundle opened")

	results, err := s.parser.DecodeBundle(ctx, b)
	if err != nil {
		return nil, err
	}

	report := &Report{Bundle: b.Name, Difficulties: []Summary{}}
	for _, r := range results {
		if r.Err != nil {
			report.Failed = append(report.Failed, FailedEntry{Entry: r.Name, Reason: r.Err.Error()})
			continue
		}
		summary, err := Summarize(r.Difficulty)
		if err != nil {
			log.Warn().Str("entry", r.Name).Err(err).Msg("summary failed")
			report.Failed = append(report.Failed, FailedEntry{Entry: r.Name, Reason: err.Error()})
			continue
		}
		report.Difficulties = append(report.Difficulties, summary)

		if s.index != nil {
			if err := s.index.Save(summary.Record(s.now().UTC())); err != nil {
				log.Error().Str("entry", r.Name).Err(err).Msg("index write failed")
			}
		}
	}

	if s.outDir != "" {
		if err := s.writeReport(report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (s *session) writeReport(report *Report) error {
	for _, f := range report.Failed {
		if err := Fail(s.outDir, report.Bundle, f.Entry, f.Reason); err != nil {
			return fmt.Errorf("writing failure report: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "\t")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.outDir, report.Bundle+".json"), data, 0o644)
}
