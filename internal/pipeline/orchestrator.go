// Package pipeline wires the naming discriminator, per-file extractors,
// aggregator, curve fitter, enumerator and scorer into the full and lite
// analysis pipelines, ported from trimParameterPrediction.py's
// performAnalysis/performAnalysisLite.
package pipeline

import (
	"go.uber.org/zap"

	"figaro/internal/curve"
	"figaro/internal/fastqio"
	"figaro/internal/ferrors"
	"figaro/internal/naming"
	"figaro/internal/trim"
	"figaro/internal/workerpool"
)

// Variant selects whether the Q2/N gates are applied during scoring.
type Variant int

const (
	// Full applies the expected-error, first-N and first-Q2 gates.
	Full Variant = iota
	// Lite applies only the expected-error gate.
	Lite
)

// Options configures one end-to-end run, matching performAnalysis's
// parameter list.
type Options struct {
	InputDir              string
	MinimumCombinedLength int
	Subsample             int
	Percentile            int
	MakePlots             bool
	ForwardPrimerLength   int
	ReversePrimerLength   int
	NamingStandard        string
	Variant               Variant
	Workers               int
	FullValidation        bool
}

// Result is what one orchestrated run produces.
type Result struct {
	Table        []trim.ParameterSet
	ForwardCurve curve.Fit
	ReverseCurve curve.Fit
	ForwardPlot  []byte
	ReversePlot  []byte
}

// Run executes the full data flow: directory -> naming discriminator ->
// per-file extractors -> aggregator -> curve fitter & enumerator -> scorer.
func Run(opts Options, logger *zap.Logger) (Result, error) {
	standard, err := naming.Load(opts.NamingStandard)
	if err != nil {
		return Result{}, err
	}

	table, err := naming.Enumerate(opts.InputDir, standard)
	if err != nil {
		return Result{}, err
	}
	if len(table.Unpaired) > 0 {
		return Result{}, &ferrors.ValidationError{Detail: "forward/reverse file counts do not match: unpaired files present"}
	}
	if len(table.Forward) == 0 {
		return Result{}, &ferrors.ValidationError{Detail: "no paired samples found in input directory"}
	}

	reverseDescriptors := make([]naming.Descriptor, len(table.Forward))
	for i, fwd := range table.Forward {
		rev, ok := table.Reverse(fwd)
		if !ok {
			return Result{}, &ferrors.ValidationError{Detail: "missing reverse mate for " + fwd.FilePath}
		}
		reverseDescriptors[i] = rev
	}

	scheme, err := fastqio.DetectEncoding(table.Forward[0].FilePath, 100)
	if err != nil {
		return Result{}, err
	}

	if opts.FullValidation {
		if err := checkPairedSync(table.Forward, reverseDescriptors, scheme, logger); err != nil {
			return Result{}, err
		}
	}

	forwardReadLen, err := checkReadLengths(table.Forward, scheme, opts.FullValidation, logger)
	if err != nil {
		return Result{}, err
	}
	reverseReadLen, err := checkReadLengths(reverseDescriptors, scheme, opts.FullValidation, logger)
	if err != nil {
		return Result{}, err
	}

	forwardLen := forwardReadLen - opts.ForwardPrimerLength
	reverseLen := reverseReadLen - opts.ReversePrimerLength

	workers := opts.Workers
	if workers < 1 {
		workers = workerpool.DefaultWorkers()
	}
	subsample := opts.Subsample
	if subsample < 1 {
		subsample = 1
	}

	forwardCurve, forwardPlotXS, forwardPlotYS, err := fitCurve(table.Forward, table.Forward, scheme, opts.ForwardPrimerLength, subsample, opts.Percentile, workers)
	if err != nil {
		return Result{}, err
	}
	reverseCurve, reversePlotXS, reversePlotYS, err := fitCurve(reverseDescriptors, table.Forward, scheme, opts.ReversePrimerLength, subsample, opts.Percentile, workers)
	if err != nil {
		return Result{}, err
	}

	minForward, minReverse, _ := trim.MinimumTrimPositions(forwardLen, reverseLen, opts.MinimumCombinedLength, logger)
	positions := trim.AllPositions(forwardLen, reverseLen, minForward)

	forwardEE, err := buildLeanMatrix(table.Forward, table.Forward, scheme, opts.ForwardPrimerLength, minForward-1, subsample, workers)
	if err != nil {
		return Result{}, err
	}
	reverseEE, err := buildLeanMatrix(reverseDescriptors, table.Forward, scheme, opts.ReversePrimerLength, minReverse-1, subsample, workers)
	if err != nil {
		return Result{}, err
	}

	in := trim.Inputs{
		ForwardEE:                  forwardEE,
		ReverseEE:                  reverseEE,
		ForwardCurve:               &forwardCurve,
		ReverseCurve:               &reverseCurve,
		ForwardMinimumTrimPosition: minForward - 1,
		ReverseMinimumTrimPosition: minReverse - 1,
		ForwardPrimerLength:        opts.ForwardPrimerLength,
		ReversePrimerLength:        opts.ReversePrimerLength,
	}

	var results []trim.ParameterSet
	if opts.Variant == Full {
		forwardFirstN, err := buildArray(table.Forward, table.Forward, scheme, opts.ForwardPrimerLength, subsample, workers, extractKindFirstN)
		if err != nil {
			return Result{}, err
		}
		reverseFirstN, err := buildArray(reverseDescriptors, table.Forward, scheme, opts.ReversePrimerLength, subsample, workers, extractKindFirstN)
		if err != nil {
			return Result{}, err
		}
		forwardFirstQ2, err := buildArray(table.Forward, table.Forward, scheme, opts.ForwardPrimerLength, subsample, workers, extractKindFirstQ2)
		if err != nil {
			return Result{}, err
		}
		reverseFirstQ2, err := buildArray(reverseDescriptors, table.Forward, scheme, opts.ReversePrimerLength, subsample, workers, extractKindFirstQ2)
		if err != nil {
			return Result{}, err
		}
		in.ForwardFirstN = forwardFirstN
		in.ReverseFirstN = reverseFirstN
		in.ForwardFirstQ2 = forwardFirstQ2
		in.ReverseFirstQ2 = reverseFirstQ2
		results = trim.ScoreFull(positions, in)
	} else {
		results = trim.ScoreLite(positions, in)
	}

	result := Result{Table: results, ForwardCurve: forwardCurve, ReverseCurve: reverseCurve}
	if opts.MakePlots {
		fwdPNG, err := curve.RenderPNG("forward", opts.Percentile, forwardPlotXS, forwardPlotYS, forwardCurve)
		if err != nil {
			return Result{}, err
		}
		revPNG, err := curve.RenderPNG("reverse", opts.Percentile, reversePlotXS, reversePlotYS, reverseCurve)
		if err != nil {
			return Result{}, err
		}
		result.ForwardPlot = fwdPNG
		result.ReversePlot = revPNG
	}

	return result, nil
}
