package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	sp "github.com/invertedv/spending"
	"github.com/invertedv/spending/chart"
	"github.com/invertedv/spending/internal/config"
	"github.com/invertedv/spending/load"
	"github.com/invertedv/spending/melt"
	"github.com/spf13/cobra"
)

func main() {
	if e := newRoot(os.Stdout).Execute(); e != nil {
		slog.Error("spending failed", "error", e)
		os.Exit(1)
	}
}

func newRoot(stdout io.Writer) *cobra.Command {
	cfg := &config.Config{}
	var envFile string

	root := &cobra.Command{
		Use:           "spending",
		Short:         "Reshape and chart government spending by function",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, e := config.Load(envFile)
			if e != nil {
				return e
			}

			// flags win over the environment
			loaded.Source, loaded.File, loaded.Dialect, loaded.Query = cfg.Source, cfg.File, cfg.Dialect, cfg.Query
			loaded.Out, loaded.Categories, loaded.Labels, loaded.LogLevel = cfg.Out, cfg.Categories, cfg.Labels, cfg.LogLevel
			*cfg = *loaded

			if e := cfg.Validate(); e != nil {
				return e
			}

			lvl, _ := cfg.Level()
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
			slog.SetDefault(logger)

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Source, "source", config.SourceFile, "where the wide table comes from: file or db")
	flags.StringVar(&cfg.File, "file", "", "spending CSV file")
	flags.StringVar(&cfg.Dialect, "dialect", "clickhouse", "database: clickhouse or postgres")
	flags.StringVar(&cfg.Query, "query", "", "query returning the wide table")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "debug, info, warn or error")
	flags.StringVar(&envFile, "env", "", "file of environment settings (default .env)")

	root.AddCommand(meltCmd(cfg, stdout), describeCmd(cfg, stdout), plotCmd(cfg))

	return root
}

func meltCmd(cfg *config.Config, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "melt",
		Short: "Write the long table (code, year, million, gdp_percent, per_capita) as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			long, e := longTable(cmd.Context(), cfg)
			if e != nil {
				return e
			}

			var f *sp.Files
			if f, e = sp.NewFiles(sp.FileNAString("...")); e != nil {
				return e
			}

			if cfg.Out == "" {
				return f.Write(stdout, long)
			}

			if e = f.Save(cfg.Out, long); e != nil {
				return e
			}

			slog.Info("long table written", "file", cfg.Out, "rows", long.RowCount())

			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Out, "out", "", "output CSV (stdout if empty)")

	return cmd
}

func describeCmd(cfg *config.Config, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Summarize each metric of the long table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			long, e := longTable(cmd.Context(), cfg)
			if e != nil {
				return e
			}

			for _, m := range melt.DefaultMetrics {
				var s *sp.Summary
				if s, e = sp.Describe(long.Column(m.Name)); e != nil {
					return e
				}

				if _, e = fmt.Fprintln(stdout, s); e != nil {
					return e
				}
			}

			return nil
		},
	}
}

func plotCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart spending in millions and as % of GDP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Out == "" {
				return fmt.Errorf("plot needs --out")
			}

			wide, e := wideTable(cmd.Context(), cfg)
			if e != nil {
				return e
			}

			var long *sp.Table
			if long, e = melt.Melted(wide); e != nil {
				return e
			}

			labels := cfg.Labels
			if len(labels) == 0 {
				if labels, e = load.Describe(wide, cfg.Categories...); e != nil {
					return e
				}
			}

			var p *sp.Plot
			if p, e = chart.Render(long, cfg.Categories, labels); e != nil {
				return e
			}

			if e = p.Save(cfg.Out); e != nil {
				return e
			}

			slog.Info("chart written", "file", cfg.Out, "categories", strings.Join(cfg.Categories, ","))

			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Out, "out", "", "output html file")
	cmd.Flags().StringSliceVar(&cfg.Categories, "categories", chart.MainCategories, "category codes to chart")
	cmd.Flags().StringSliceVar(&cfg.Labels, "labels", nil, "legend labels (default: the Function descriptions)")

	return cmd
}

func wideTable(ctx context.Context, cfg *config.Config) (*sp.Table, error) {
	if cfg.Source == config.SourceFile {
		slog.Debug("loading", "file", cfg.File)
		return load.CSV(cfg.File)
	}

	dlct, e := load.Connect(ctx, cfg.Connect())
	if e != nil {
		return nil, e
	}
	defer func() { _ = dlct.Close() }()

	slog.Debug("querying", "dialect", dlct.DialectName(), "host", cfg.DBHost)

	return load.DB(ctx, dlct, cfg.Query)
}

func longTable(ctx context.Context, cfg *config.Config) (*sp.Table, error) {
	wide, e := wideTable(ctx, cfg)
	if e != nil {
		return nil, e
	}

	slog.Debug("wide table loaded", "categories", wide.RowCount(), "columns", wide.ColumnCount())

	return melt.Melted(wide)
}
