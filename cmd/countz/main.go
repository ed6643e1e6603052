package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zoobzio/countz"
	"github.com/zoobzio/countz/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// installTracer makes sub the process-wide subscriber. Replaced in tests,
// where the global slot can only be filled once per binary.
var installTracer = func(sub countz.Subscriber) (*countz.Tracer, error) {
	if err := countz.SetGlobalDefault(sub); err != nil {
		return nil, err
	}
	return countz.Default(), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("fatal")
		os.Exit(1)
	}
}

// newRootCmd builds and returns the root cobra command.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "countz",
		Short: "Aggregate *count fields from tracing events into counters",
		Long: `countz installs a counting listener as the global subscriber, emits a
small set of demo spans and events, and prints the resulting counters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDemo,
	}
	addDemoFlags(rootCmd)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demo (same as running without a subcommand)",
		RunE:  runDemo,
	}
	addDemoFlags(demoCmd)
	rootCmd.AddCommand(demoCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "countz %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

func addDemoFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "report format: text or prometheus")
	cmd.Flags().String("pattern", "", "substring a field name must contain to be counted")
	cmd.Flags().String("log-level", "", "log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-format", "", "log format: json or text")
}

// flagOverrides returns the flags the user set, keyed like the config file.
func flagOverrides(cmd *cobra.Command) map[string]any {
	keys := map[string]string{
		"format":     "format",
		"pattern":    "pattern",
		"log-level":  "log_level",
		"log-format": "log_format",
	}
	overrides := make(map[string]any)
	for flag, key := range keys {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			overrides[key] = v
		}
	}
	return overrides
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagOverrides(cmd))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	initLogging(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	store, listener := countz.NewCounters(
		countz.WithPattern(cfg.Pattern),
		countz.WithLogger(log.Logger),
	)

	tracer, err := installTracer(listener)
	if err != nil {
		return fmt.Errorf("install subscriber: %w", err)
	}

	emitDemo(cmd.Context(), tracer)

	snap := store.Snapshot()
	log.Info().
		Int("counters", len(snap.Samples)).
		Time("taken_at", snap.TakenAt).
		Msg("demo finished")

	return report(cmd.OutOrStdout(), store, cfg)
}

func report(w io.Writer, store *countz.Store, cfg *config.Config) error {
	if cfg.Format != "prometheus" {
		return store.Report(w)
	}

	reg := prometheus.NewRegistry()
	if err := reg.Register(countz.NewMetricsCollector(store, cfg.Namespace)); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func initLogging(w io.Writer, level string, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if format == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	}

	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
