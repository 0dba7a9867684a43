package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/config"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/pipeline"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/internal/storage"
	"github.com/jovita-brundziene/airflow-de-intro-project-jbru/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "elt",
		Usage: "Upload parquet files to object storage and enforce metadata types on the way back",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the upload, load, normalize and enforce sequence once",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "dry-run",
						Usage:   "Log intended uploads without performing them",
						EnvVars: []string{"ELT_DRY_RUN"},
					},
					&cli.StringFlag{
						Name:    "run-mode",
						Usage:   "Run mode: preview or write",
						EnvVars: []string{"ELT_RUN_MODE"},
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (trace, debug, info, warn, error)",
						EnvVars: []string{"LOG_LEVEL"},
					},
				},
				Action: runPipeline,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runPipeline(c *cli.Context) error {
	cfg := config.Load()
	if c.IsSet("dry-run") {
		cfg.ELT.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("run-mode") {
		cfg.ELT.RunMode = c.String("run-mode")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	logg := logger.New(cfg.Log.Level)

	store, err := storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to build storage client: %w", err)
	}

	p := pipeline.New(store, pipeline.Config{
		LocalDirectory: cfg.ELT.LocalDirectory,
		Prefix:         cfg.ELT.Prefix,
		Extension:      cfg.ELT.Extension,
		MetadataFile:   cfg.ELT.MetadataFile,
		ISODateColumns: cfg.ELT.ISODateColumns,
		DryRun:         cfg.ELT.DryRun,
		RunMode:        cfg.ELT.RunMode,
		OutputDir:      cfg.ELT.OutputDir,
		PreviewRows:    cfg.ELT.PreviewRows,
	}, logg)

	table, err := p.Run(c.Context)
	if err != nil {
		logg.Error().Err(err).Msg("Pipeline run failed")
		return err
	}

	logg.Info().
		Int("rows", table.NumRows()).
		Int("columns", len(table.Columns())).
		Msg("Pipeline run completed")
	return nil
}
