package service

import (
	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/util"
)

type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate groups samples by (ROI, phase pair) and computes the statistics of every group.
// Only groups with at least one sample exist in the result. Samples keep their relative order
// inside a group, so the sums are taken in input order.
func (a *Aggregator) Aggregate(samples []model.DeltaSample) map[model.GroupKey]*model.StatGroup {
	var groupedSamples []linq.Group
	linq.From(samples).
		GroupByT(
			func(el model.DeltaSample) model.GroupKey { return el.Key },
			func(el model.DeltaSample) model.DeltaSample { return el }).
		ToSlice(&groupedSamples)

	groups := make(map[model.GroupKey]*model.StatGroup, len(groupedSamples))
	for _, el := range groupedSamples {
		key := el.Key.(model.GroupKey)
		groupSamples := make([]model.DeltaSample, 0, len(el.Group))
		for _, s := range el.Group {
			groupSamples = append(groupSamples, s.(model.DeltaSample))
		}
		groups[key] = finalizeGroup(key, groupSamples)
	}
	return groups
}

func finalizeGroup(key model.GroupKey, samples []model.DeltaSample) *model.StatGroup {
	deltas := make([]float64, len(samples))
	startVolumes := make([]float64, len(samples))
	for i, s := range samples {
		deltas[i] = s.Delta
		startVolumes[i] = s.StartVolume
	}

	bundle := util.CalcStatsBundle(deltas)
	group := &model.StatGroup{
		Key:              key,
		Samples:          samples,
		N:                bundle.N,
		Average:          bundle.Avg,
		VolumePhaseStart: util.Mean(startVolumes),
		// the corrected estimator is undefined for a single sample
		StdDev: null.NewFloat(bundle.StdDev, bundle.N >= 2),
	}

	if group.N == 1 {
		log.Warn().
			Str("roi", key.ROI.String()).
			Str("phases", key.Pair.String()).
			Str("patientId", samples[0].PatientID).
			Msg("only one patient contributes to this group, its standard deviation is undefined")
	}

	return group
}
