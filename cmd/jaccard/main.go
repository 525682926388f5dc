// Command jaccard computes pairwise Jaccard similarity matrices from
// categorical label tables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nozzle/jaccard"
	"github.com/nozzle/jaccard/binarize"
	"github.com/nozzle/jaccard/distance"
	"github.com/nozzle/jaccard/internal/config"
	"github.com/nozzle/jaccard/pairwise"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options holds flag values for one command tree.
type options struct {
	input      string
	output     string
	format     string
	approach   string
	metric     string
	distance   bool
	workers    int
	precision  int
	configPath string
	verbose    bool

	logger *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "jaccard",
		Short: "Calculate pairwise Jaccard similarity between entities",
		Long: `jaccard reads entities described by categorical labels, binarizes them
into an entity x category indicator matrix, and writes the pairwise Jaccard
similarity (or distance) matrix as CSV.

Input formats:
  pseudo_tab  one column per entity, headed by its name, listing its labels
  long        two columns: entity, label
  binary      0/1 indicator matrix, optionally with a leading Entity column

Approaches: vectorized (scikit), correlation (pandas), loop, bitmap.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return opts.applyConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculate(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.input, "input_path", "i", "", "Path to input data (required)")
	pf.StringVarP(&opts.format, "format_spec", "f", string(binarize.PseudoTabular), "Format of input data: pseudo_tab, long or binary")
	pf.StringVarP(&opts.output, "output_path", "o", "", "Path to output file (default stdout)")
	pf.StringVar(&opts.configPath, "config", "", "YAML file with default settings")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	_ = root.MarkPersistentFlagRequired("input_path")

	f := root.Flags()
	f.StringVarP(&opts.approach, "approach", "m", string(pairwise.DefaultApproach), "Implementation approach: vectorized, correlation, loop or bitmap")
	f.StringVar(&opts.metric, "metric", "jaccard", "Binary distance metric: "+strings.Join(distance.Names(), ", "))
	f.BoolVar(&opts.distance, "distance", false, "Write distances instead of similarities")
	f.IntVar(&opts.workers, "workers", 0, "Number of workers (0 = all CPUs)")
	f.IntVar(&opts.precision, "precision", -1, "Decimals in output (-1 = shortest exact)")

	root.AddCommand(newBinarizeCmd(opts))
	return root
}

// newLogger builds a production JSON logger writing to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core, zap.AddCaller())
}

func newBinarizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "binarize",
		Short: "Parse input and write the binarized indicator matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBinarize(cmd, opts)
		},
	}
}

// applyConfig loads the config file, if any, into flags the user did not set.
func (o *options) applyConfig(cmd *cobra.Command) error {
	if o.configPath == "" {
		return nil
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.logger.Debug("Loaded config", zap.String("path", o.configPath))

	flags := cmd.Flags()
	if !flags.Changed("format_spec") {
		o.format = cfg.Format
	}
	if !flags.Changed("output_path") && cfg.Output != "" {
		o.output = cfg.Output
	}
	if flags.Lookup("approach") == nil {
		return nil
	}
	if !flags.Changed("approach") {
		o.approach = cfg.Approach
	}
	if !flags.Changed("metric") {
		o.metric = cfg.Metric
	}
	if !flags.Changed("distance") {
		o.distance = !cfg.Similarity
	}
	if !flags.Changed("workers") {
		o.workers = cfg.Workers
	}
	if !flags.Changed("precision") {
		o.precision = cfg.Precision
	}
	return nil
}

func runCalculate(cmd *cobra.Command, opts *options) error {
	logger := opts.logger

	if opts.precision < -1 {
		return fmt.Errorf("precision must be >= -1, got %d", opts.precision)
	}

	approach, ok := pairwise.ParseApproach(opts.approach)
	if !ok {
		logger.Warn("Unknown approach, using default",
			zap.String("approach", opts.approach),
			zap.String("default", string(approach)))
	}

	m, err := readMatrix(opts)
	if err != nil {
		return err
	}

	cfg := jaccard.DefaultConfig()
	cfg.Approach = approach
	cfg.Metric = opts.metric
	cfg.Similarity = !opts.distance
	cfg.NumWorkers = opts.workers

	res, err := jaccard.Calculate(cmd.Context(), m, cfg)
	if err != nil {
		return err
	}
	logger.Debug("Computed matrix",
		zap.String("approach", string(approach)),
		zap.String("metric", cfg.Metric),
		zap.Bool("similarity", res.Similarity))

	return writeOutput(cmd, opts, func(w io.Writer) error {
		return res.WriteCSV(w, opts.precision)
	})
}

func runBinarize(cmd *cobra.Command, opts *options) error {
	m, err := readMatrix(opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd, opts, m.WriteCSV)
}

func readMatrix(opts *options) (*binarize.Matrix, error) {
	format, err := binarize.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}

	m, err := binarize.Read(opts.input, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.input, err)
	}

	opts.logger.Info("Loaded input",
		zap.String("path", opts.input),
		zap.String("format", string(format)),
		zap.Int("entities", m.NumEntities()),
		zap.Int("categories", m.NumCategories()))
	return m, nil
}

// writeOutput runs write against the output file, or stdout when none is set.
func writeOutput(cmd *cobra.Command, opts *options, write func(io.Writer) error) error {
	if opts.output == "" || opts.output == "-" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(opts.output)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	opts.logger.Info("Saved output", zap.String("path", opts.output))
	return nil
}
