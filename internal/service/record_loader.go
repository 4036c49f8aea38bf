package service

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/volerr"
)

const (
	PatientIDColumn = "Patient ID"
	FieldDelimiter  = ';'

	utf8BOM = "\ufeff"
)

// columnIndex maps every required column to its position in a row.
type columnIndex struct {
	patientID int
	volumes   [3][3]int
}

type RecordLoader struct{}

func NewRecordLoader() *RecordLoader {
	return &RecordLoader{}
}

// RequiredColumns returns the header names the input table must contain.
func RequiredColumns() []string {
	columns := []string{PatientIDColumn}
	for _, roi := range model.ROIs {
		for _, phase := range model.Phases {
			columns = append(columns, roi.ColumnName(phase))
		}
	}
	return columns
}

// Load reads a semicolon delimited table with a single header row from r. source names the
// input in error messages. The whole table is rejected on the first malformed row.
func (l *RecordLoader) Load(ctx context.Context, r io.Reader, source string) ([]*model.PatientRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = FieldDelimiter
	// every row must have as many fields as the header
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, volerr.ErrSchema.
			Msg("input has no header row").
			WithExtras(volerr.Extras{"file": source})
	} else if err != nil {
		return nil, rowFormatError(err, source)
	}

	index, err := resolveColumns(header, source)
	if err != nil {
		return nil, err
	}

	records := make([]*model.PatientRecord, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, rowFormatError(err, source)
		}

		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, index, line, source)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	duplicates := lo.FindDuplicatesBy(records, func(r *model.PatientRecord) string { return r.PatientID })
	if len(duplicates) > 0 {
		log.Warn().
			Str("file", source).
			Strs("patientIds", lo.Map(duplicates, func(r *model.PatientRecord, _ int) string { return r.PatientID })).
			Msg("duplicate patient ids found, every row is used as a separate patient")
	}

	log.Debug().
		Str("file", source).
		Int("records", len(records)).
		Msg("loaded patient records")

	return records, nil
}

func resolveColumns(header []string, source string) (*columnIndex, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	names := lo.Map(header, func(name string, _ int) string { return strings.TrimSpace(name) })
	required := RequiredColumns()

	missing := lo.Without(required, names...)
	if len(missing) > 0 {
		return nil, volerr.ErrSchema.
			Msg("missing required column(s): %s", strings.Join(missing, ", ")).
			WithExtras(volerr.Extras{"file": source, "columns": missing})
	}

	duplicated := lo.Intersect(required, lo.FindDuplicates(names))
	if len(duplicated) > 0 {
		return nil, volerr.ErrSchema.
			Msg("column(s) appear more than once: %s", strings.Join(duplicated, ", ")).
			WithExtras(volerr.Extras{"file": source, "columns": duplicated})
	}

	position := func(name string) int {
		return lo.IndexOf(names, name)
	}

	index := &columnIndex{patientID: position(PatientIDColumn)}
	for _, roi := range model.ROIs {
		for _, phase := range model.Phases {
			index.volumes[roi][phase-1] = position(roi.ColumnName(phase))
		}
	}
	return index, nil
}

func parseRow(row []string, index *columnIndex, line int, source string) (*model.PatientRecord, error) {
	record := &model.PatientRecord{
		PatientID: row[index.patientID],
		Line:      line,
	}

	for _, roi := range model.ROIs {
		for _, phase := range model.Phases {
			column := roi.ColumnName(phase)
			volume, err := parseVolume(row[index.volumes[roi][phase-1]])
			if err != nil {
				return nil, volerr.ErrRowFormat.
					Msg("invalid value in column %s on line %d", column, line).
					WithExtras(volerr.Extras{
						"file":       source,
						"line":       line,
						"column":     column,
						"patient_id": record.PatientID,
					}).
					WithCause(err)
			}
			record.SetVolume(roi, phase, volume)
		}
	}

	return record, nil
}

// parseVolume parses a single measurement cell. A blank cell is a missing measurement.
func parseVolume(cell string) (null.Float, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return null.Float{}, nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return null.Float{}, errors.Errorf("%q is not a number", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}, errors.Errorf("%q is not a finite number", cell)
	}
	if v < 0 {
		return null.Float{}, errors.Errorf("volume %q is negative", cell)
	}
	return null.FloatFrom(v), nil
}

// rowFormatError converts a failure of the csv reader into a row format error, keeping the line
// the reader stopped at.
func rowFormatError(err error, source string) error {
	var parseErr *csv.ParseError
	if !errors.As(err, &parseErr) {
		return volerr.ErrRowFormat.
			Msg("failed to read input").
			WithExtras(volerr.Extras{"file": source}).
			WithCause(err)
	}

	msg := "malformed row on line %d"
	if errors.Is(parseErr.Err, csv.ErrFieldCount) {
		msg = "row on line %d has a different number of fields than the header"
	}
	return volerr.ErrRowFormat.
		Msg(msg, parseErr.StartLine).
		WithExtras(volerr.Extras{"file": source, "line": parseErr.StartLine}).
		WithCause(parseErr.Err)
}
