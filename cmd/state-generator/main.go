// Package main provides the CLI entrypoint for state-generator.
//
// state-generator derives observable companions for models marked with
// //state:derive:
//   - gen writes one state_gen.go per package, optionally on every change
//   - inspect prints the classification plan without writing anything
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "state-generator:", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "state-generator",
		Usage: "Derive shared and scoped observable companions from Go models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("STATE_GENERATOR_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Use the human-readable development logger",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "gen",
				Usage:  "Generate companion files",
				Flags:  append(packageFlags(), &cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Regenerate on source changes"}),
				Action: runGen,
			},
			{
				Name:   "inspect",
				Usage:  "Print the generation plan of each package",
				Flags:  packageFlags(),
				Action: runInspect,
			},
		},
	}
}

func packageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "pkg",
			Aliases: []string{"p"},
			Usage:   "Package pattern to process, repeatable (default \".\")",
		},
	}
}

// newLogger builds the CLI logger at level.
func newLogger(level zap.AtomicLevel, dev bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = level

	return cfg.Build()
}
