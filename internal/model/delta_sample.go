package model

// GroupKey identifies the statistics group a delta sample belongs to.
type GroupKey struct {
	ROI  ROI
	Pair PhasePair
}

func (k GroupKey) String() string {
	return k.ROI.String() + k.Pair.String()
}

// DeltaSample is the volume change of one patient and ROI between the two phases of a pair.
type DeltaSample struct {
	PatientID string
	Key       GroupKey

	// Delta is start volume minus end volume: positive values mean the volume shrank.
	Delta       float64
	StartVolume float64
}
