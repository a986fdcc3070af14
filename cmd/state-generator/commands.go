package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"state-generator/internal/analyze"
	"state-generator/internal/config"
	"state-generator/internal/diagnostic"
	"state-generator/internal/gen"
	"state-generator/internal/watch"
)

// errDerivation reports that at least one package had derivation errors.
var errDerivation = errors.New("derivation failed")

// session carries what every command needs.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	patterns []string
}

func newSession(cmd *cli.Command) (*session, error) {
	cfg, err := config.Resolve(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Level()
	if raw := cmd.String("log-level"); raw != "" {
		if level, err = zapcore.ParseLevel(raw); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	logger, err := newLogger(zap.NewAtomicLevelAt(level), cmd.Bool("dev"))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	gen.SetLogger(logger.Named("gen"))

	patterns := cmd.StringSlice("pkg")
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	return &session{cfg: cfg, logger: logger, patterns: patterns}, nil
}

func (s *session) load() (*analyze.ModelGraph, error) {
	graph, err := analyze.NewAnalyzer().SkipFile(s.cfg.Output).LoadPackages(s.patterns...)
	if err != nil {
		return nil, err
	}

	for _, te := range graph.TypeErrors {
		s.logger.Debug("tolerated type error", zap.String("error", te.Error()))
	}

	diags := graph.Diagnostics()
	s.report(diags)

	return graph, nil
}

func (s *session) report(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		s.logger.Warn(d.Message,
			zap.String("code", d.Code),
			zap.String("model", d.Model),
			zap.String("field", d.FieldPath),
			zap.String("pos", d.Position))
	}

	for _, d := range diags.Errors {
		s.logger.Error(d.Message,
			zap.String("code", d.Code),
			zap.String("model", d.Model),
			zap.String("field", d.FieldPath),
			zap.String("pos", d.Position))
	}
}

// generate loads the packages, derives every package concurrently and
// writes the files of the packages that succeeded.
func (s *session) generate(ctx context.Context) error {
	graph, err := s.load()
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(s.cfg.ToGenerator())
	paths := graph.PackagePaths()
	files := make([]*gen.GeneratedFile, len(paths))
	failed := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	// Derivation failures are collected per package in failed and do not
	// cancel the other packages; only cancellation of ctx stops the group.
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			files[i], failed[i] = generator.Generate(graph, path)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("generation cancelled: %w", err)
	}

	var out []gen.GeneratedFile

	for i, file := range files {
		if failed[i] != nil {
			s.logger.Error("generation failed", zap.String("package", paths[i]), zap.Error(failed[i]))
			continue
		}

		if file == nil {
			s.logger.Debug("no models", zap.String("package", paths[i]))
			continue
		}

		out = append(out, *file)
	}

	if err := gen.WriteFiles(out, ""); err != nil {
		return err
	}

	for _, file := range out {
		s.logger.Info("generated", zap.String("dir", file.Dir), zap.Strings("models", file.Models))
	}

	if err := errors.Join(failed...); err != nil {
		return fmt.Errorf("%w: %w", errDerivation, err)
	}

	return nil
}

func runGen(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	err = s.generate(ctx)
	if !cmd.Bool("watch") {
		return err
	}

	if err != nil {
		s.logger.Warn("initial generation failed", zap.Error(err))
	}

	graph, err := s.load()
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(graph.Packages))
	for _, path := range graph.PackagePaths() {
		dirs = append(dirs, graph.Packages[path].Dir)
	}

	w := watch.New(dirs, s.cfg.Output, s.cfg.Debounce, func(ctx context.Context, _ []string) error {
		return s.generate(ctx)
	}).WithLogger(s.logger.Named("watch"))

	return w.Run(ctx)
}

func runInspect(_ context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	graph, err := s.load()
	if err != nil {
		return err
	}

	dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
	generator := gen.NewGenerator(s.cfg.ToGenerator())

	var failed []error

	for _, path := range graph.PackagePaths() {
		plan, err := generator.Plan(graph, path)
		if err != nil {
			failed = append(failed, err)
			continue
		}

		fmt.Fprintf(os.Stdout, "# %s\n", path)
		dump.Fdump(os.Stdout, plan)
	}

	if err := errors.Join(failed...); err != nil {
		return fmt.Errorf("%w: %w", errDerivation, err)
	}

	return nil
}
