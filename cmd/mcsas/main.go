// Command mcsas loads a two- or three-column scattering curve, runs the
// Monte-Carlo size-distribution fit, and writes a histogram CSV, a JSON
// settings dump, and a gob-encoded contribs checkpoint.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mcsas/dataset"
	"mcsas/histogram"
	"mcsas/mcopt"
	"mcsas/models/cylinder"
	"mcsas/models/gaussianchain"
	"mcsas/models/sphere"
	"mcsas/orchestrator"
	"mcsas/repetition"
	"mcsas/scattermodel"
)

func main() {
	dataPath := flag.String("data", "", "path to a whitespace/comma separated q,I[,sigma] text file (required)")
	modelName := flag.String("model", "sphere", "scattering model: sphere, cylinder, gaussianchain")

	numContribs := flag.Int("num-contribs", 200, "contributions per repetition")
	numReps := flag.Int("num-reps", 20, "independent repetitions")
	maxIterations := flag.Int("max-iterations", 100000, "iteration cap per repetition")
	convergenceTarget := flag.Float64("convergence-target", 1.0, "target reduced chi-squared")
	maxRetries := flag.Int("max-retries", 5, "retries per repetition before Nonconvergence")
	compensationExponent := flag.Float64("compensation-exponent", 0.5, "volume compensation exponent alpha")
	deltaRhoSq := flag.Float64("delta-rho-sq", 1.0, "contrast squared")
	findBackground := flag.Bool("find-background", true, "fit a flat background term")
	memsave := flag.Bool("memsave", false, "trade per-contribution intensity cache for lower memory use")
	startFromMinimum := flag.Bool("start-from-minimum", false, "seed every contribution at its parameter's lower bound")
	maskZeroI := flag.Bool("mask-zero-i", false, "drop points where I=0")
	maskNegativeI := flag.Bool("mask-negative-i", false, "drop points where I<0")
	qMin := flag.Float64("q-min", 0, "lower q bound; 0 disables")
	qMax := flag.Float64("q-max", 0, "upper q bound; 0 disables")
	eMin := flag.Float64("e-min", 0.01, "relative error floor")
	seed := flag.Uint64("seed", 1, "master RNG seed")
	concurrency := flag.Int("concurrency", 0, "max concurrent repetitions; 0 means GOMAXPROCS")

	histBins := flag.Int("hist-bins", 50, "bins for the first active parameter's histogram")
	histLog := flag.Bool("hist-log", false, "use log-spaced histogram bins")

	outCSV := flag.String("out-csv", "mcsas_histogram.csv", "histogram CSV output path")
	outJSON := flag.String("out-json", "mcsas_settings.json", "settings JSON output path")
	outContribs := flag.String("out-contribs", "mcsas_contribs.gob", "gob-encoded contribs checkpoint path")
	resumeFrom := flag.String("resume", "", "gob-encoded contribs checkpoint to seed repetitions from")

	flag.Parse()

	if *dataPath == "" {
		exitErr("missing required -data flag")
	}

	q, i, sigma, err := loadDataFile(*dataPath)
	if err != nil {
		exitErr("load data: %v", err)
	}

	ds, err := dataset.New(q, i, sigma, dataset.Options{
		QMin: *qMin, QMax: *qMax,
		MaskZeroI: *maskZeroI, MaskNegativeI: *maskNegativeI,
		EMin: *eMin,
	})
	if err != nil {
		exitErr("build dataset: %v", err)
	}

	model, err := buildModel(*modelName)
	if err != nil {
		exitErr("build model: %v", err)
	}

	scale := histogram.LinearScale
	if *histLog {
		scale = histogram.LogScale
	}

	cfg := orchestrator.Config{
		NumContribs:          *numContribs,
		NumReps:              *numReps,
		MaxIterations:        *maxIterations,
		ConvergenceTarget:    *convergenceTarget,
		MaxRetries:           *maxRetries,
		CompensationExponent: *compensationExponent,
		DeltaRhoSq:           *deltaRhoSq,
		StartFromMinimum:     *startFromMinimum,
		FindBackground:       *findBackground,
		Memsave:              *memsave,
		MaskZeroI:            *maskZeroI,
		MaskNegativeI:        *maskNegativeI,
		QBounds:              [2]float64{*qMin, *qMax},
		EMin:                 *eMin,
		Seed:                 *seed,
		Concurrency:          *concurrency,
		Histogram: []orchestrator.HistogramSpec{
			{ParamIndex: 0, Bins: *histBins, Scale: scale},
		},
	}

	orch, err := orchestrator.New(cfg, model, ds)
	if err != nil {
		exitErr("configure run: %v", err)
	}

	var priors []*mcopt.ContributionSet
	if *resumeFrom != "" {
		priors, err = loadContribs(*resumeFrom)
		if err != nil {
			exitErr("load resume checkpoint: %v", err)
		}
	}

	if err := writeSettingsJSON(*outJSON, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "write settings json: %v\n", err)
	}

	start := time.Now()
	results, err := orch.Run(context.Background(), priors, func(p repetition.Progress) {
		fmt.Fprintf(os.Stderr, "\rrepetition %d/%d: %s elapsed=%s eta=%s",
			p.Repetition+1, p.Total, p.Status, p.Elapsed.Round(time.Second), p.EstRemaining.Round(time.Second))
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		exitErr("run: %v", err)
	}
	fmt.Printf("completed=%d discarded=%d cancelled=%v wall=%s\n", results.Completed, results.Discarded, results.Cancelled, time.Since(start).Round(time.Second))

	if len(results.Histograms) > 0 {
		if err := writeHistogramCSV(*outCSV, results.Histograms[0]); err != nil {
			fmt.Fprintf(os.Stderr, "write histogram csv: %v\n", err)
		}
	}
	if err := saveContribs(*outContribs, results.Runs); err != nil {
		fmt.Fprintf(os.Stderr, "write contribs checkpoint: %v\n", err)
	}
}

func buildModel(name string) (scattermodel.Model, error) {
	switch strings.ToLower(name) {
	case "sphere":
		return sphere.New(), nil
	case "cylinder":
		return &cylinder.Model{}, nil
	case "gaussianchain":
		return &gaussianchain.Model{}, nil
	default:
		return nil, fmt.Errorf("unknown model %q", name)
	}
}

// loadDataFile reads a whitespace- or comma-separated text file of q, I and
// an optional sigma column, skipping blank lines and lines starting with
// '#', matching the reference's PDH/ASCII loader shape.
func loadDataFile(path string) (q, i, sigma []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == '\t' || r == ' ' })
		if len(fields) < 2 {
			continue
		}
		qv, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		iv, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		sv := 0.0
		if len(fields) >= 3 {
			sv, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		q = append(q, qv)
		i = append(i, iv)
		sigma = append(sigma, sv)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, err
	}
	if len(q) == 0 {
		return nil, nil, nil, fmt.Errorf("%s: no data rows", path)
	}
	return q, i, sigma, nil
}

func writeSettingsJSON(path string, cfg orchestrator.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

func exitErr(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
