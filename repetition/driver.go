package repetition

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mcsas/mcopt"
	"mcsas/randsrc"
	"mcsas/scattermodel"
)

// Config holds the RepetitionDriver's own settings.
type Config struct {
	NumReps     int
	MaxRetries  int // each repetition gets MaxRetries+2 attempts; no default is applied
	MasterSeed  uint64
	Concurrency int // 0 means runtime.GOMAXPROCS(0)
}

// Progress reports driver state after each completed repetition: wall-clock
// and mean/estimated-remaining time. The driver calls the optional
// callback; nothing requires the caller to consume it.
type Progress struct {
	Repetition   int
	Total        int
	Status       mcopt.RunStatus
	Elapsed      time.Duration
	MeanPerRep   time.Duration
	EstRemaining time.Duration
}

// Driver runs Config.NumReps independent McOptimizer repetitions and
// assembles the results into an Ensemble.
type Driver struct {
	Config Config
	Model  scattermodel.Model
	Q      []float64
	I      []float64
	Sigma  []float64
	Mc     mcopt.Config

	// Priors, if non-nil, supplies up to Config.NumReps prior
	// ContributionSets; repetition r uses Priors[r % len(Priors)].
	Priors []*mcopt.ContributionSet
}

// seedFor derives a deterministic per-repetition seed from the master seed,
// independent of goroutine scheduling or worker count.
func seedFor(master uint64, r int) uint64 {
	const mix = 0x9E3779B97F4A7C15 // golden-ratio constant, splitmix64-style
	return master ^ (uint64(r+1) * mix)
}

// Run launches Config.NumReps repetitions, parallel at the repetition
// boundary, retrying a repetition up to MaxRetries+2 total attempts before
// discarding it as Nonconvergence. ctx cancellation stops launching further
// repetitions; already-completed repetitions are kept.
func (d *Driver) Run(ctx context.Context, progress func(Progress)) (*Ensemble, error) {
	n := d.Config.NumReps
	ens := &Ensemble{Runs: make([]*mcopt.Run, n)}

	concurrency := d.Config.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, concurrency)
	start := time.Now()
	var mu sync.Mutex
	completed := 0

	for r := 0; r < n; r++ {
		r := r
		select {
		case <-ctx.Done():
			ens.Cancelled = true
		default:
		}
		if ens.Cancelled {
			break
		}

		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()

			run, discarded := d.runOne(gctx, r)

			mu.Lock()
			defer mu.Unlock()
			if discarded {
				ens.Discarded++
			} else {
				ens.Runs[r] = run
			}
			completed++
			if progress != nil {
				elapsed := time.Since(start)
				mean := elapsed / time.Duration(completed)
				progress(Progress{
					Repetition:   r,
					Total:        n,
					Status:       statusOf(run),
					Elapsed:      elapsed,
					MeanPerRep:   mean,
					EstRemaining: mean * time.Duration(n-completed),
				})
			}
			return nil
		})
	}

	_ = g.Wait()
	select {
	case <-ctx.Done():
		ens.Cancelled = true
	default:
	}
	return ens, nil
}

func statusOf(run *mcopt.Run) mcopt.RunStatus {
	if run == nil {
		return mcopt.MaxIterations
	}
	return run.Status
}

// runOne drives one repetition through up to MaxRetries+2 attempts,
// returning (run, false) on success or (nil, true) once all attempts are
// exhausted without reaching Converged.
func (d *Driver) runOne(ctx context.Context, r int) (*mcopt.Run, bool) {
	attempts := d.Config.MaxRetries + 2
	var prior *mcopt.ContributionSet
	if len(d.Priors) > 0 {
		prior = d.Priors[r%len(d.Priors)]
	}

	cancel := ctx.Done()
	for a := 0; a < attempts; a++ {
		opt := &mcopt.McOptimizer{
			Config: d.Mc,
			Model:  d.Model,
			Q:      d.Q,
			I:      d.I,
			Sigma:  d.Sigma,
			Rng:    randsrc.New(seedFor(d.Config.MasterSeed, r) + uint64(a)),
			Prior:  prior,
			Cancel: cancel,
		}
		run, err := opt.Run()
		if err != nil {
			// NumericalFit downgrades this attempt to Nonconvergence
			// rather than aborting the whole repetition; it still
			// consumes one of the MaxRetries+2 attempts.
			continue
		}
		if run.Status == mcopt.Cancelled {
			return run, false
		}
		if run.Status == mcopt.Converged {
			return run, false
		}
		// Feed this attempt's final contributions back in as the next
		// attempt's prior, rather than starting cold every retry.
		prior = run.Contribs
	}
	return nil, true
}
