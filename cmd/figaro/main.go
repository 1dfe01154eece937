// Command figaro predicts paired-end read-trimming parameters from a
// directory of FASTQ files, replacing the original figaro.py CLI entry
// point with a cobra root command.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"figaro/internal/config"
	"figaro/internal/fastqio"
	"figaro/internal/logx"
	"figaro/internal/output"
	"figaro/internal/pipeline"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "figaro",
		Short: "Predict paired-end read-trimming parameters for amplicon sequencing runs",
		RunE:  run,
	}
	config.BindFlags(cmd)
	cmd.Flags().Bool("lite", false, "skip the first-N/first-Q2 gates and score on expected error alone")
	cmd.Flags().Bool("plots", false, "render forwardExpectedError.png / reverseExpectedError.png")
	cmd.Flags().Bool("full-validation", false, "parse every Illumina metadata line and fail on any malformed one, including odd control bits")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
		return err
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(cfg.OutputDirectory, fmt.Sprintf("figaro-%s.log", timestamp()))
	}
	logger, err := logx.New(logFile, zapcore.InfoLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	subsample := cfg.Subsample
	if subsample == -1 {
		estimate, err := fastqio.EstimateDirectorySize(cfg.InputDirectory)
		if err != nil {
			return err
		}
		estimateMB := estimate / 1e6
		subsample = autoSubsample(estimateMB)
		logger.Sugar().Infof("auto-selected subsample rate 1/%d from estimated input size %.1fMB", subsample, estimateMB)
	}

	lite, _ := cmd.Flags().GetBool("lite")
	plots, _ := cmd.Flags().GetBool("plots")
	fullValidation, _ := cmd.Flags().GetBool("full-validation")

	variant := pipeline.Full
	if lite {
		variant = pipeline.Lite
	}

	opts := pipeline.Options{
		InputDir:              cfg.InputDirectory,
		MinimumCombinedLength: cfg.MinimumCombinedLength(),
		Subsample:             subsample,
		Percentile:            cfg.Percentile,
		MakePlots:             plots,
		ForwardPrimerLength:   cfg.ForwardPrimerLength,
		ReversePrimerLength:   cfg.ReversePrimerLength,
		NamingStandard:        cfg.NamingStandard,
		Variant:               variant,
		FullValidation:        fullValidation,
	}

	result, err := pipeline.Run(opts, logger)
	if err != nil {
		logx.Critical(logger, "analysis run failed", zap.Error(err))
		return err
	}

	if err := output.WriteResultTable(cfg.OutputDirectory, cfg.OutputFileName, result.Table); err != nil {
		return err
	}
	if plots {
		if err := output.WritePlots(cfg.OutputDirectory, result.ForwardPlot, result.ReversePlot); err != nil {
			return err
		}
	}

	bestRetention := 0.0
	if len(result.Table) > 0 {
		bestRetention = result.Table[0].ReadRetention * 100
	}
	logx.Summary(0, bestRetention)

	return nil
}

// autoSubsample picks a subsample denominator that keeps the per-file read
// count manageable for large runs, matching the original's size-based
// heuristic: directories under 100MB are read in full.
func autoSubsample(estimatedMB float64) int {
	switch {
	case estimatedMB <= 100:
		return 1
	case estimatedMB <= 1000:
		return 10
	default:
		return 100
	}
}

func timestamp() string {
	return time.Now().Format("20060102-150405")
}
