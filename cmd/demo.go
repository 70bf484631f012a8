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
	"github.com/kyleking/quick-model/internal/model"
	"github.com/kyleking/quick-model/internal/project"
	"github.com/kyleking/quick-model/internal/storage"
	"github.com/kyleking/quick-model/internal/validator"
)

var demoPeople = []string{"Hugi Þórðarson", "Ósk Gunnlaugsdóttir"}

func demoConfig(dest string) builder.Config {
	return builder.Config{
		ProjectName:          "testProject",
		MapName:              "testMap",
		Namespace:            "quick.model",
		DestinationDirectory: dest,
		Entities: []model.Entity{
			model.NewEntity("Person", model.NewAttribute("name", model.TypeString)),
			model.NewEntity("Division", model.NewAttribute("name", model.TypeString)),
		},
	}
}

func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Generate the sample model, create it in DuckDB and store two people",
		Description: `Generate a Person/Division model into the output directory, open the
configured data node, apply the schema strategy, insert two Person rows and
print every stored Person.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dest",
				Aliases: []string{"d"},
				Usage:   "directory for the generated descriptors",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "directory for DuckDB files",
			},
			&cli.BoolFlag{
				Name:  "in-memory",
				Usage: "use an in-memory database instead of data-dir",
			},
			&cli.StringFlag{
				Name:  "schema-strategy",
				Usage: "skip, create_if_no_schema or throw_on_partial_schema",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd, map[string]any{
				"dest":            cmd.String("dest"),
				"data-dir":        cmd.String("data-dir"),
				"schema-strategy": cmd.String("schema-strategy"),
			})
			if err != nil {
				return err
			}

			if cmd.Bool("in-memory") {
				cfg.Runtime.DataDir = ""
			}

			stop := startProgress("Running demo", cfg.Debug.Verbose)
			defer stop()

			return runDemo(ctx, cfg, setupLogger(cfg), stdout)
		},
	}
}

func runDemo(ctx context.Context, cfg *config.Config, logger *logging.Logger, out io.Writer) error {
	strategy, err := storage.StrategyFor(cfg.Runtime.SchemaStrategy)
	if err != nil {
		return err
	}

	result, err := generator.New(project.NewYAMLPersister(), validator.New(), logger).Run(demoConfig(cfg.Output.Directory))
	if err != nil {
		return err
	}

	schemaMap := result.Model.Maps[0]

	factory := storage.NewDuckDBFactory(cfg.Runtime.DataDir, cfg.Runtime.MaxConnections)
	defer func() {
		if cerr := factory.Close(); cerr != nil {
			logger.ErrorWithErr("Failed to close data source", cerr)
		}
	}()

	db, err := factory.DataSource(ctx, cfg.Runtime.NodeName)
	if err != nil {
		return err
	}

	if err := logger.Track("schema "+cfg.Runtime.SchemaStrategy, func() error {
		return strategy.Apply(ctx, db, schemaMap)
	}); err != nil {
		return err
	}

	repo := storage.NewRepository(db, schemaMap)

	for _, name := range demoPeople {
		id, err := repo.Insert(ctx, "Person", map[string]any{"name": name})
		if err != nil {
			return err
		}

		logger.WithField("id", id).Debugf("Inserted Person %s", name)
	}

	people, err := repo.SelectAll(ctx, "Person")
	if err != nil {
		return err
	}

	for _, p := range people {
		fmt.Fprintf(out, "Person: %v\n", p.Values["name"])
	}

	fmt.Fprintln(out, formatter.NewFormatter().FormatRecords("Person", people))

	return nil
}
