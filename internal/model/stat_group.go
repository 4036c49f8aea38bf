package model

import "gopkg.in/guregu/null.v3"

// StatGroup aggregates the delta samples of one (ROI, phase pair).
type StatGroup struct {
	Key     GroupKey
	Samples []DeltaSample

	N                int
	Average          float64
	VolumePhaseStart float64

	// StdDev is the corrected sample standard deviation of the deltas; invalid when N < 2.
	StdDev null.Float
}
