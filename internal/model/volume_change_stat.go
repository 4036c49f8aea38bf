package model

import "gopkg.in/guregu/null.v3"

// VolumeChangeStat is a single element of the emitted report.
type VolumeChangeStat struct {
	ROI              string     `json:"ROI"`
	VolumePhaseStart float64    `json:"Volume Phase start"`
	PhaseStart       int        `json:"Phase start"`
	PhaseEnd         int        `json:"Phase end"`
	Average          float64    `json:"average"`
	StdDev           null.Float `json:"std_dev"`
	N                int        `json:"n"`
}
