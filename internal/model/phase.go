package model

import "fmt"

// Phase is a treatment timepoint at which volumes were measured.
type Phase int

const (
	Phase1 Phase = iota + 1
	Phase2
	Phase3
)

var Phases = []Phase{Phase1, Phase2, Phase3}

func (p Phase) Valid() bool {
	return p >= Phase1 && p <= Phase3
}

// PhasePair is a pair of consecutive phases. Only the pairs declared below exist.
type PhasePair int

const (
	PhasePair12 PhasePair = iota
	PhasePair23
)

// PhasePairs lists every pair in report order.
var PhasePairs = []PhasePair{PhasePair12, PhasePair23}

func (pp PhasePair) Start() Phase {
	return Phase(int(pp) + 1)
}

func (pp PhasePair) End() Phase {
	return Phase(int(pp) + 2)
}

func (pp PhasePair) String() string {
	return fmt.Sprintf("(%d,%d)", pp.Start(), pp.End())
}
