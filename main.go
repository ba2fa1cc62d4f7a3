package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/apmyp/vmg_converter_go/aggregator"
	"github.com/apmyp/vmg_converter_go/config"
	"github.com/apmyp/vmg_converter_go/discover"
	"github.com/apmyp/vmg_converter_go/formatter"
	"github.com/apmyp/vmg_converter_go/logger"
	"github.com/apmyp/vmg_converter_go/message"
	"github.com/apmyp/vmg_converter_go/output"
	"github.com/apmyp/vmg_converter_go/reader"
	"github.com/apmyp/vmg_converter_go/worker"
)

var errUsage = errors.New("an output format and at least one file or directory are required")

// App converts a set of .vmg files into one output stream
type App struct {
	config     *config.Config
	aggregator *aggregator.Aggregator
	formatter  formatter.Formatter
}

// NewApp creates a new application instance from a validated config
func NewApp(cfg *config.Config) (*App, error) {
	f, err := formatter.Get(cfg.Format)
	if err != nil {
		return nil, err
	}

	r := reader.NewReader().WithRegion(cfg.Region)
	return &App{
		config:     cfg,
		aggregator: aggregator.NewAggregator(r, worker.NewPool(cfg.Jobs)),
		formatter:  f,
	}, nil
}

// Convert reads every archive named by args and writes the sorted result.
// Nothing is written when any input fails.
func (app *App) Convert(args []string, stdout io.Writer) error {
	files, err := discover.Expand(args, app.config.Pattern)
	if err != nil {
		return err
	}
	logger.Info("files", len(files), "format", app.config.Format, "converting")

	messages, err := app.aggregator.Collect(files)
	if err != nil {
		return err
	}

	return app.write(messages, stdout)
}

func (app *App) write(messages []*message.Message, stdout io.Writer) (err error) {
	sink, err := output.Open(app.config.Output, app.config.Compress, stdout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	if err := app.formatter.Format(sink, messages); err != nil {
		return fmt.Errorf("writing %s: %w", app.config.Format, err)
	}

	logger.Info("messages", len(messages), "output", outputName(app.config.Output), "done")
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

type flags struct {
	configPath string
	format     string
	output     string
	pattern    string
	compress   string
	jobs       int
	region     string
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "vmg_converter_go [flags] file/dir...",
		Short: "Convert Nokia .vmg SMS archives into one XML, CSV or text file",
		Long: `Reads every .vmg file given directly or found in the given directories,
extracts the telephone number, date and body of each message, sorts them by
date and writes them as a single XML, CSV or plain text document.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			f.apply(cmd, cfg)

			if len(args) == 0 || cfg.Format == "" {
				cmd.Usage()
				return errUsage
			}
			if err := cfg.Validate(); err != nil {
				cmd.Usage()
				return err
			}
			if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
				return err
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			return app.Convert(args, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", config.DefaultPath, "JSON config file (optional)")
	fl.StringVarP(&f.format, "format", "f", "", "one of: "+strings.Join(formatter.Names(), ", "))
	fl.StringVarP(&f.output, "output", "o", "", "file to write to; if not specified, writes to stdout")
	fl.StringVarP(&f.pattern, "pattern", "p", discover.DefaultPattern, "file name pattern used inside directories")
	fl.StringVarP(&f.compress, "compress", "c", output.CompressNone, "output compression: "+strings.Join(output.Compressions(), ", "))
	fl.IntVarP(&f.jobs, "jobs", "j", 1, "number of files read concurrently")
	fl.StringVarP(&f.region, "region", "r", "", "rewrite telephone numbers to E.164 using this default region (e.g. IN)")
	fl.StringVar(&f.logLevel, "log-level", "info", "trace, debug, info, warn or error")
	fl.StringVar(&f.logFormat, "log-format", "console", "console or json")

	return cmd
}

// apply copies explicitly set flags over the loaded config
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("pattern") {
		cfg.Pattern = f.pattern
	}
	if changed("compress") {
		cfg.Compress = f.compress
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
	if changed("region") {
		cfg.Region = f.region
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
}

func runWith(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// Run is the main application entry point
func Run(args []string) error {
	return runWith(args, os.Stdout, os.Stderr)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if err := Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
