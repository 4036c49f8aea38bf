package model

import "gopkg.in/guregu/null.v3"

// PatientRecord holds the nine volume measurements of a single patient. A measurement that was
// left empty in the input is an invalid null.Float, never zero.
type PatientRecord struct {
	PatientID string

	// Line is the line number of the record in the source table, for diagnostics.
	Line int

	volumes [3][3]null.Float
}

func (r *PatientRecord) Volume(roi ROI, phase Phase) null.Float {
	return r.volumes[roi][phase-1]
}

func (r *PatientRecord) SetVolume(roi ROI, phase Phase, v null.Float) {
	r.volumes[roi][phase-1] = v
}
