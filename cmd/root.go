package cmd

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/logging"
)

// stdout receives command output; tests swap it for a buffer
var stdout io.Writer = os.Stdout

// NewApp builds the root command
func NewApp() *cli.Command {
	return &cli.Command{
		Name:  "quick-model",
		Usage: "Generate dual-layer schema models from entity definitions",
		Description: `quick-model turns a list of entities and their attributes into a physical
table layout plus an object layer mapped onto it, writes the result as YAML
project descriptors and validates it. The demo command creates the schema in
an embedded DuckDB database and round-trips a few rows through it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug mode",
			},
		},
		Commands: []*cli.Command{
			GenerateCommand(),
			ValidateCommand(),
			InspectCommand(),
			DemoCommand(),
			ConfigCommand(),
		},
	}
}

// Execute runs the CLI with the process arguments
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}

// loadConfig resolves the configuration for cmd. Global flags only
// override when given; overrides adds command-specific keys.
func loadConfig(cmd *cli.Command, overrides map[string]any) (*config.Config, error) {
	flags := make(map[string]any, len(overrides)+3)
	for k, v := range overrides {
		flags[k] = v
	}

	if cmd.IsSet("log-level") {
		flags["log-level"] = cmd.String("log-level")
	}

	for _, name := range []string{"verbose", "debug"} {
		if cmd.IsSet(name) {
			flags[name] = cmd.Bool(name)
		}
	}

	cfg, err := config.LoadConfigWithOverrides(flags)
	if err != nil {
		return nil, err
	}

	if cfg.Debug.Verbose || cfg.Debug.Enabled {
		cfg.Logging.Level = "debug"
	}

	cfg.ExpandAllPaths()

	return cfg, nil
}

// setupLogger initialises the process logger, falling back to stderr
func setupLogger(cfg *config.Config) *logging.Logger {
	if err := logging.InitializeLogger(cfg.Logging); err != nil {
		logging.SetupFallbackLogger()
		logging.GetLogger().ErrorWithErr("Failed to initialise logger", err)
	}

	return logging.GetLogger()
}
