package model

import "fmt"

// ROI is a region of interest whose volume is tracked across treatment phases.
type ROI int

const (
	// ROIGTV is the gross tumor volume.
	ROIGTV ROI = iota
	// ROIGTVN is the nodal component of the gross tumor volume.
	ROIGTVN
	// ROIPTVDP is the dose-painting planning target volume.
	ROIPTVDP
)

// ROIs lists every ROI in report order.
var ROIs = []ROI{ROIGTV, ROIGTVN, ROIPTVDP}

var roiNames = [...]string{
	ROIGTV:   "GTV",
	ROIGTVN:  "GTV_N",
	ROIPTVDP: "PTV_DP",
}

func (r ROI) String() string {
	if !r.Valid() {
		return fmt.Sprintf("ROI(%d)", int(r))
	}
	return roiNames[r]
}

func (r ROI) Valid() bool {
	return r >= ROIGTV && r <= ROIPTVDP
}

// ColumnName returns the header name of the column holding the volume of r at phase p,
// e.g. "GTV_N_phase_2".
func (r ROI) ColumnName(p Phase) string {
	return fmt.Sprintf("%s_phase_%d", r, p)
}
