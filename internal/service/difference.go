package service

import (
	"context"
	"runtime"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/app/appconfig"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/async"
)

type DifferenceComputer struct {
	// workers is the number of patients processed concurrently
	workers int
}

func NewDifferenceComputer(conf *appconfig.Config) *DifferenceComputer {
	workers := conf.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &DifferenceComputer{
		workers: workers,
	}
}

// Compute returns the delta samples of every patient, in the order of records. Patients are
// independent of each other and are processed concurrently.
func (c *DifferenceComputer) Compute(ctx context.Context, records []*model.PatientRecord) ([]model.DeltaSample, error) {
	return async.FlatMap(ctx, records, c.workers, func(record *model.PatientRecord) ([]model.DeltaSample, error) {
		return PatientDeltas(record), nil
	})
}

// PatientDeltas returns one sample per (ROI, phase pair) of record whose start and end volumes
// are both present. A missing volume only removes the samples of the pairs it is an endpoint of.
func PatientDeltas(record *model.PatientRecord) []model.DeltaSample {
	samples := make([]model.DeltaSample, 0, len(model.ROIs)*len(model.PhasePairs))
	for _, roi := range model.ROIs {
		for _, pair := range model.PhasePairs {
			start := record.Volume(roi, pair.Start())
			end := record.Volume(roi, pair.End())
			if !start.Valid || !end.Valid {
				continue
			}
			samples = append(samples, model.DeltaSample{
				PatientID:   record.PatientID,
				Key:         model.GroupKey{ROI: roi, Pair: pair},
				Delta:       start.Float64 - end.Float64,
				StartVolume: start.Float64,
			})
		}
	}
	return samples
}
