package orchestrator

import (
	"context"

	"mcsas/dataset"
	"mcsas/histogram"
	"mcsas/mcopt"
	"mcsas/repetition"
	"mcsas/scattermodel"
)

// Orchestrator wires Data and a ScatteringModel through RepetitionDriver and
// Histogrammer, holding the one validated Config for the run's lifetime.
type Orchestrator struct {
	Config Config
	Model  scattermodel.Model
	Data   *dataset.Dataset
}

// New validates cfg against model's active parameter count and returns an
// Orchestrator, or a *ConfigError.
func New(cfg Config, model scattermodel.Model, data *dataset.Dataset) (*Orchestrator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(len(model.ActiveParams())); err != nil {
		return nil, err
	}
	return &Orchestrator{Config: cfg, Model: model, Data: data}, nil
}

// Priors optionally seeds each repetition from a prior ensemble's
// contributions, supporting a resume path analogous to loading a saved
// pickle/binary of contribs.
func (o *Orchestrator) Run(ctx context.Context, priors []*mcopt.ContributionSet, progress func(repetition.Progress)) (*Results, error) {
	q, i, sigma := o.Data.Q(), o.Data.I(), o.Data.Sigma()
	qMax := 0.0
	for _, v := range q {
		if v > qMax {
			qMax = v
		}
	}

	driver := &repetition.Driver{
		Config: repetition.Config{
			NumReps:     o.Config.NumReps,
			MaxRetries:  o.Config.MaxRetries,
			MasterSeed:  o.Config.Seed,
			Concurrency: o.Config.Concurrency,
		},
		Model: o.Model,
		Q:     q,
		I:     i,
		Sigma: sigma,
		Mc: mcopt.Config{
			NumContribs:          o.Config.NumContribs,
			MaxIterations:        o.Config.MaxIterations,
			ConvergenceTarget:    o.Config.ConvergenceTarget,
			CompensationExponent: o.Config.CompensationExponent,
			FindBackground:       o.Config.FindBackground,
			Memsave:              o.Config.Memsave,
			StartFromMinimum:     o.Config.StartFromMinimum,
			QMax:                 qMax,
			VsUpdateRule:         o.Config.VsUpdateRule,
		},
		Priors: priors,
	}

	ens, err := driver.Run(ctx, progress)
	if err != nil {
		return nil, err
	}

	hg := &histogram.Histogrammer{
		Model:                o.Model,
		Q:                    q,
		I:                    i,
		Sigma:                sigma,
		CompensationExponent: o.Config.CompensationExponent,
		DeltaRhoSq:           o.Config.DeltaRhoSq,
		FindBackground:       o.Config.FindBackground,
	}

	specs := make([]histogram.ParamSpec, len(o.Config.Histogram))
	for idx, h := range o.Config.Histogram {
		specs[idx] = histogram.ParamSpec{Index: h.ParamIndex, Bins: h.Bins, Scale: h.Scale}
	}
	histResults, err := hg.Run(ens, specs)
	if err != nil {
		return nil, err
	}

	var moments []*histogram.Moments
	for _, mr := range o.Config.MomentsRequests {
		m, err := histogram.ComputeMoments(ens, o.Model, q, i, sigma, mr.ParamIndex, mr.Min, mr.Max, mr.Weighting, o.Config.CompensationExponent, o.Config.DeltaRhoSq, o.Config.FindBackground)
		if err != nil {
			return nil, err
		}
		moments = append(moments, m)
	}

	fittedMean, fittedStd, scaleMean, scaleStd, bgMean, bgStd := summarizeFits(ens)

	return &Results{
		FittedIMean:    fittedMean,
		FittedIStd:     fittedStd,
		ScaleMean:      scaleMean,
		ScaleStd:       scaleStd,
		BackgroundMean: bgMean,
		BackgroundStd:  bgStd,
		Histograms:     histResults,
		Moments:        moments,
		Completed:      len(ens.Completed()),
		Discarded:      ens.Discarded,
		Cancelled:      ens.Cancelled,
		Runs:           ens.Completed(),
	}, nil
}
