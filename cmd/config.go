package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/errors"
)

func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:        "config",
		Usage:       "Display the active configuration",
		Description: `Show the current active configuration including all settings from file, environment variables, and command-line flags.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			return runConfig(cfg, stdout)
		},
	}
}

func runConfig(cfg *config.Config, out io.Writer) error {
	if cfg == nil {
		return errors.NewConfigError("failed to load configuration", "")
	}

	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out, "Active Configuration:")

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  Directory: %s\n", cfg.Output.Directory)

	fmt.Fprintln(out, "\nRuntime:")

	dataDir := cfg.Runtime.DataDir
	if dataDir == "" {
		dataDir = "(in-memory)"
	}

	fmt.Fprintf(out, "  Data Directory: %s\n", dataDir)
	fmt.Fprintf(out, "  Node: %s\n", cfg.Runtime.NodeName)
	fmt.Fprintf(out, "  Schema Strategy: %s\n", cfg.Runtime.SchemaStrategy)
	fmt.Fprintf(out, "  Max Connections: %d\n", cfg.Runtime.MaxConnections)

	fmt.Fprintln(out, "\nLogging:")
	fmt.Fprintf(out, "  Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  Format: %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "  Output: %s\n", cfg.Logging.Output)

	if cfg.Logging.Output == "file" {
		fmt.Fprintf(out, "  File: %s\n", cfg.Logging.File)
	}

	fmt.Fprintln(out, "\nDebug:")
	fmt.Fprintf(out, "  Enabled: %t\n", cfg.Debug.Enabled)
	fmt.Fprintf(out, "  Verbose: %t\n", cfg.Debug.Verbose)

	if cfg.Debug.Enabled {
		fmt.Fprintln(out, "\nRaw Configuration (JSON):")
		fmt.Fprintln(out, "==========================")

		jsonData, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}

		fmt.Fprintln(out, string(jsonData))
	}

	return nil
}
