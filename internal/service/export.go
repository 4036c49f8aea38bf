package service

import (
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/volerr"
)

type Format int

const (
	FormatJSON Format = iota
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

const XLSXSheetName = "volume_changes"

// XLSXHeader is the first row of the spreadsheet export; it matches the JSON keys.
var XLSXHeader = []interface{}{"ROI", "Volume Phase start", "Phase start", "Phase end", "average", "std_dev", "n"}

// ExportTarget is a file the report is written to.
type ExportTarget struct {
	Path   string
	Format Format
}

type Export struct{}

func NewExport() *Export {
	return &Export{}
}

// staged is a fully written temporary file waiting to be moved over its target.
type staged struct {
	target  ExportTarget
	tmpPath string
}

// Export writes report to every target. Each target is first written to a temporary file next
// to it; targets are only replaced once every temporary file is complete, so a failure leaves
// no partially written report behind. Existing files are overwritten.
func (s *Export) Export(report []model.VolumeChangeStat, targets []ExportTarget) error {
	stagedFiles := make([]staged, 0, len(targets))
	cleanup := func() {
		for _, st := range stagedFiles {
			_ = os.Remove(st.tmpPath)
		}
	}

	for _, target := range targets {
		tmpPath, err := s.stage(report, target)
		if err != nil {
			cleanup()
			return outputWriteError(err, target)
		}
		stagedFiles = append(stagedFiles, staged{target: target, tmpPath: tmpPath})
	}

	for i, st := range stagedFiles {
		if err := os.Rename(st.tmpPath, st.target.Path); err != nil {
			// files already renamed are complete reports and are kept
			for _, rest := range stagedFiles[i:] {
				_ = os.Remove(rest.tmpPath)
			}
			return outputWriteError(errors.Wrap(err, "failed to move report into place"), st.target)
		}
		log.Info().
			Str("file", st.target.Path).
			Str("format", st.target.Format.String()).
			Int("records", len(report)).
			Msg("report written")
	}
	return nil
}

func (s *Export) stage(report []model.VolumeChangeStat, target ExportTarget) (string, error) {
	dir, base := filepath.Split(target.Path)
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(target.Path); err == nil && info.IsDir() {
		return "", errors.New("destination is a directory")
	}

	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temporary file")
	}
	tmpPath := file.Name()

	err = s.encode(file, report, target.Format)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "failed to close temporary file")
	}
	if err == nil {
		err = errors.Wrap(os.Chmod(tmpPath, 0o644), "failed to set file mode")
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}

func (s *Export) encode(w io.Writer, report []model.VolumeChangeStat, format Format) error {
	switch format {
	case FormatJSON:
		return EncodeJSON(w, report)
	case FormatXLSX:
		return EncodeXLSX(w, report)
	default:
		return errors.Errorf("unsupported export format %d", format)
	}
}

// EncodeJSON writes report as an indented JSON array followed by a newline.
func EncodeJSON(w io.Writer, report []model.VolumeChangeStat) error {
	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}

// EncodeXLSX writes report as a single sheet workbook, one row per record below a header row.
// An undefined standard deviation is left as an empty cell.
func EncodeXLSX(w io.Writer, report []model.VolumeChangeStat) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), XLSXSheetName); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}
	header := XLSXHeader
	if err := f.SetSheetRow(XLSXSheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header row")
	}

	for i, stat := range report {
		var stdDev interface{}
		if stat.StdDev.Valid {
			stdDev = stat.StdDev.Float64
		}
		row := []interface{}{stat.ROI, stat.VolumePhaseStart, stat.PhaseStart, stat.PhaseEnd, stat.Average, stdDev, stat.N}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address row")
		}
		if err := f.SetSheetRow(XLSXSheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func outputWriteError(err error, target ExportTarget) error {
	return volerr.ErrOutputWrite.
		Msg("failed to write %s report to %s", target.Format, target.Path).
		WithExtras(volerr.Extras{"file": target.Path}).
		WithCause(err)
}
