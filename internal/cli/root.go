// Package cli implements the fieldcompare command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/architeacher/fieldcompare/internal/config"
	"github.com/architeacher/fieldcompare/internal/telemetry"
	"github.com/architeacher/fieldcompare/pkg/decorator"
	"github.com/architeacher/fieldcompare/pkg/logger"
	"github.com/architeacher/fieldcompare/pkg/metrics"
	"github.com/architeacher/fieldcompare/pkg/metrics/noop"
	"github.com/architeacher/fieldcompare/pkg/validation"
	"github.com/architeacher/fieldcompare/pkg/validation/native"
	"github.com/architeacher/fieldcompare/pkg/validation/script"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format    string
	Runtime   string
	Locale    string
	LogLevel  string
	LogFormat string
}

// app is what every command runs against, built once the flags are parsed.
type app struct {
	cfg       *config.ServiceConfig
	opts      *RootOptions
	log       logger.Logger
	telemetry *telemetry.Providers
	metrics   metrics.Client
	language  language.Tag
	messages  validation.MessageFormatter
	output    outputFormatter
}

// NewRootCommand creates the root command. Flag defaults come from cfg.
func NewRootCommand(cfg *config.ServiceConfig) *cobra.Command {
	opts := &RootOptions{}
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:   "fieldcompare",
		Short: "Compare form fields the way server and browser validation do",
		Long: `fieldcompare evaluates field comparison and type check rules with either
the native or the script runtime, renders client validation rules and checks
that both runtimes agree.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return commandError(fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}

			return a.init(cmd, cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Runtime, "runtime", cfg.Validation.Runtime, "evaluator (native|script)")
	cmd.PersistentFlags().StringVar(&opts.Locale, "locale", cfg.Validation.Locale, "language of messages and titles")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.Logging.Level, "log level")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", cfg.Logging.Format, "log format (json|console)")

	cmd.AddCommand(newCompareCommand(a))
	cmd.AddCommand(newTypeCheckCommand(a))
	cmd.AddCommand(newRulesCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newMatrixCommand(a))

	return cmd
}

func (a *app) init(cmd *cobra.Command, base *config.ServiceConfig) error {
	cfg := *base
	cfg.Validation.Runtime = a.opts.Runtime
	cfg.Validation.Locale = a.opts.Locale
	cfg.Logging.Level = a.opts.LogLevel
	cfg.Logging.Format = a.opts.LogFormat

	if err := cfg.Validate(); err != nil {
		return commandError("invalid configuration", err)
	}

	tag, err := cfg.Language()
	if err != nil {
		return commandError("invalid configuration", err)
	}

	messages, err := validation.NewMessageFormatter(tag)
	if err != nil {
		return commandError("failed to load messages", err)
	}

	providers, err := telemetry.New(&cfg, cmd.ErrOrStderr())
	if err != nil {
		return commandError("failed to set up telemetry", err)
	}

	a.cfg = &cfg
	a.log = logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	a.telemetry = providers
	a.language = tag
	a.messages = messages
	a.output = outputFormatter{format: a.opts.Format, writer: cmd.OutOrStdout()}
	a.metrics = noop.NewMetricsClient()

	if cfg.MetricsEnabled() {
		a.metrics = metrics.NewOTelClient(providers.Meter(), decorator.MetricDescriptors, func(err error) {
			a.log.Warn().Err(err).Msg("failed to record metric")
		})
	}

	return nil
}

func (a *app) policy() validation.Policy {
	if a.cfg.Validation.Runtime == config.RuntimeScript {
		return script.New()
	}

	return native.New()
}

func (a *app) decorate(v validation.Validator) validation.Validator {
	return decorator.ApplyValidatorDecorators(v, a.log, a.metrics, a.telemetry.TracerProvider)
}

// runE runs fn and then flushes telemetry, whatever fn returned.
func (a *app) runE(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd.Context(), cmd, args)

		return errors.Join(err, a.close(cmd.Context()))
	}
}

func (a *app) close(ctx context.Context) error {
	rm, err := a.telemetry.Collect(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to collect metrics")
	}

	for name, value := range telemetry.Counters(rm) {
		a.log.Info().Str("metric", name).Int64("value", value).Msg("validation metrics")
	}

	if err := a.telemetry.Shutdown(ctx); err != nil {
		return commandError("failed to shut down telemetry", err)
	}

	return nil
}

// Execute runs the command line with args and returns the process exit code.
// Command errors are reported on stderr.
func Execute(ctx context.Context, cfg *config.ServiceConfig, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintf(stderr, "Error: %s\n", msg)
		}
	}

	return GetExitCode(err)
}
