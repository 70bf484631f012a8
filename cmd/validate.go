package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/formatter"
	"github.com/kyleking/quick-model/internal/project"
	"github.com/kyleking/quick-model/internal/validator"
)

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Usage: "directory holding project descriptors (default: configured output directory)",
	}
}

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate saved projects and print their findings",
		Description: `Load one project, or every project found in the directory, and report
validation findings. Findings are advisory and do not change the exit status.`,
		Flags: []cli.Flag{
			dirFlag(),
			&cli.StringFlag{
				Name:    "project",
				Aliases: []string{"p"},
				Usage:   "project name (default: all projects in the directory)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, map[string]any{"dest": cmd.String("dir")})
			if err != nil {
				return err
			}

			setupLogger(cfg)

			return runValidate(cfg.Output.Directory, cmd.String("project"), stdout)
		},
	}
}

func runValidate(dir, projectName string, out io.Writer) error {
	names := []string{projectName}

	if projectName == "" {
		var err error

		names, err = project.Discover(dir)
		if err != nil {
			return err
		}

		if len(names) == 0 {
			return errors.Newf(errors.ErrTypeNotFound, "no projects found in %s", dir)
		}
	}

	v := validator.New()
	f := formatter.NewFormatter()

	for _, name := range names {
		schema, err := project.Load(dir, name)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Project %s\n", name)
		fmt.Fprintln(out, f.FormatFindings(v.Validate(schema)))
	}

	return nil
}

func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the tables and object entities of a saved project",
		ArgsUsage: " <project>",
		Flags: []cli.Flag{
			dirFlag(),
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format (short, long)",
				Value: string(formatter.FormatLong),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			cfg, err := loadConfig(cmd, map[string]any{"dest": cmd.String("dir")})
			if err != nil {
				return err
			}

			setupLogger(cfg)

			return runInspect(cfg.Output.Directory, args.First(), formatter.ParseFormat(cmd.String("format")), stdout)
		},
	}
}

func runInspect(dir, projectName string, format formatter.OutputFormat, out io.Writer) error {
	schema, err := project.Load(dir, projectName)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, formatter.NewFormatter().FormatModel(schema, format))

	return nil
}
