package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/kyleking/quick-model/internal/builder"
	"github.com/kyleking/quick-model/internal/config"
	"github.com/kyleking/quick-model/internal/formatter"
	"github.com/kyleking/quick-model/internal/generator"
	"github.com/kyleking/quick-model/internal/logging"
	"github.com/kyleking/quick-model/internal/project"
	"github.com/kyleking/quick-model/internal/validator"
)

type generateOptions struct {
	Definition string
	Dest       string
	DryRun     bool
	Format     formatter.OutputFormat
}

func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Build, save and validate a model from a YAML definition file",
		Description: `Read a definition file listing entities and their attributes, build the
physical and object layers, write quickmodel-<project>.yaml plus one
<map>.map.yaml into the destination directory and report validation findings.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "definition",
				Aliases:  []string{"f"},
				Usage:    "path to the YAML definition file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "dest",
				Aliases: []string{"d"},
				Usage:   "destination directory, overrides the definition file",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "build and validate without writing files",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "model output format (short, long)",
				Value: string(formatter.FormatShort),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			opts := generateOptions{
				Definition: cmd.String("definition"),
				Dest:       cmd.String("dest"),
				DryRun:     cmd.Bool("dry-run"),
				Format:     formatter.ParseFormat(cmd.String("format")),
			}

			stop := startProgress("Generating model", cfg.Debug.Verbose)
			defer stop()

			return runGenerate(ctx, cfg, opts, setupLogger(cfg), stdout)
		},
	}
}

func runGenerate(_ context.Context, cfg *config.Config, opts generateOptions, logger *logging.Logger, out io.Writer) error {
	def, err := builder.LoadDefinition(opts.Definition)
	if err != nil {
		return err
	}

	switch {
	case opts.Dest != "":
		def.DestinationDirectory = opts.Dest
	case def.DestinationDirectory == "":
		def.DestinationDirectory = cfg.Output.Directory
	}

	var persister project.Persister
	if !opts.DryRun {
		persister = project.NewYAMLPersister()
	}

	result, err := generator.New(persister, validator.New(), logger).Run(def)
	if result == nil {
		return err
	}

	f := formatter.NewFormatter()
	fmt.Fprintln(out, f.FormatModel(result.Model, opts.Format))
	fmt.Fprintln(out, f.FormatFindings(result.Findings))

	switch {
	case result.Saved:
		fmt.Fprintf(out, "Saved to %s\n", result.Destination)
	case opts.DryRun:
		fmt.Fprintln(out, "Dry run, nothing written")
	}

	return err
}
