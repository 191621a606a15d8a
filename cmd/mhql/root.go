package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mertcandav/MochaDB-sub001/internal/config"
	"github.com/mertcandav/MochaDB-sub001/internal/logger"
	"github.com/mertcandav/MochaDB-sub001/internal/metrics"
	"github.com/mertcandav/MochaDB-sub001/output"
	"github.com/mertcandav/MochaDB-sub001/query"
	"github.com/mertcandav/MochaDB-sub001/reader"
)

// app holds the state shared by all subcommands
type app struct {
	global      bool
	configPath  string
	metricsFile string
	cfg         config.Config

	logger    *slog.Logger
	registry  *prometheus.Registry
	collector *metrics.Collector
	source    *reader.Directory
	engine    *query.Engine
}

// newRootCmd builds the command tree. global installs the configured logger
// as the process default.
func newRootCmd(global bool) *cobra.Command {
	a := &app{global: global}

	root := &cobra.Command{
		Use:   "mhql",
		Short: "Query directories of parquet files with MHQL",
		Long: `mhql runs MHQL commands against a directory in which every
*.parquet file is a table named after the file.

Examples:
  mhql query 'USE * FROM sales RETURN'
  mhql -f csv query 'USE city, SUM(amount) AS total FROM sales GROUPBY city RETURN'
  mhql tables
  mhql schema sales
  mhql shell`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.StringP("data-dir", "d", "", "directory holding the parquet tables")
	flags.StringP("format", "f", "", "output format: json, jsonl, csv, table")
	flags.Int("limit", 0, "limit number of printed rows (0 = unlimited)")
	flags.String("log-level", "", "log level: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")

	root.AddCommand(
		newQueryCmd(a),
		newTablesCmd(a),
		newSchemaCmd(a),
		newShellCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the engine
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("limit") {
		cfg.Limit, _ = flags.GetInt("limit")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := output.New(cfg.Format, cmd.OutOrStdout()); err != nil {
		return err
	}
	a.cfg = cfg

	cfg.Log.Output = cmd.ErrOrStderr()
	if a.global {
		logger.Init(cfg.Log)
		a.logger = logger.Get()
	} else {
		a.logger = logger.New(cfg.Log)
	}

	a.registry = prometheus.NewRegistry()
	a.collector = metrics.New(a.registry)
	a.source = reader.NewDirectory(cfg.DataDir,
		reader.WithWorkers(cfg.Workers),
		reader.WithLogger(a.logger),
	)
	a.engine = query.NewEngine(a.source,
		query.WithLogger(a.logger),
		query.WithObserver(a.collector),
	)
	a.logger.Debug("engine ready", slog.String("data_dir", cfg.DataDir), slog.String("format", cfg.Format))
	return nil
}

func (a *app) writeMetrics() error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsFile, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
