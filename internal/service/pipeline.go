package service

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/volerr"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/util"
)

// RunOptions describes one run of the pipeline.
type RunOptions struct {
	// InputPath is the semicolon delimited table to read.
	InputPath string `validate:"nonblank"`

	// ResultsPath is the JSON report to write.
	ResultsPath string `validate:"nonblank"`

	// XLSXPath is an optional spreadsheet copy of the report. Empty disables it.
	XLSXPath string

	// Precision is the number of decimals reported numbers are rounded to.
	Precision int `validate:"gte=0,lte=15"`
}

func (o RunOptions) targets() []ExportTarget {
	targets := []ExportTarget{{Path: o.ResultsPath, Format: FormatJSON}}
	if o.XLSXPath != "" {
		targets = append(targets, ExportTarget{Path: o.XLSXPath, Format: FormatXLSX})
	}
	return targets
}

type Pipeline struct {
	RecordLoader       *RecordLoader
	DifferenceComputer *DifferenceComputer
	Aggregator         *Aggregator
	ReportEmitter      *ReportEmitter
	ExportService      *Export
}

func NewPipeline(
	recordLoader *RecordLoader,
	differenceComputer *DifferenceComputer,
	aggregator *Aggregator,
	reportEmitter *ReportEmitter,
	exportService *Export,
) *Pipeline {
	return &Pipeline{
		RecordLoader:       recordLoader,
		DifferenceComputer: differenceComputer,
		Aggregator:         aggregator,
		ReportEmitter:      reportEmitter,
		ExportService:      exportService,
	}
}

// Run reads the input table, computes the report and writes it to every target. Nothing is
// written when any step fails.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) ([]model.VolumeChangeStat, error) {
	if err := util.NewValidator().Struct(opts); err != nil {
		return nil, errors.Wrap(err, "invalid run options")
	}
	start := time.Now()

	file, err := openInput(opts.InputPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	hasher := xxh3.New()
	report, err := p.Compute(ctx, io.TeeReader(file, hasher), opts.InputPath, opts.Precision)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("file", opts.InputPath).
		Hex("xxh3", hasher.Sum(nil)).
		Msg("input fingerprint")

	if err := p.ExportService.Export(report, opts.targets()); err != nil {
		return nil, err
	}

	log.Info().
		Str("input", opts.InputPath).
		Int("groups", len(report)).
		Dur("took", time.Since(start)).
		Msg("volume changes computed")

	return report, nil
}

// Compute runs the loader, difference computer, aggregator and emitter over r without touching
// the file system.
func (p *Pipeline) Compute(ctx context.Context, r io.Reader, source string, precision int) ([]model.VolumeChangeStat, error) {
	records, err := p.RecordLoader.Load(ctx, r, source)
	if err != nil {
		return nil, err
	}

	samples, err := p.DifferenceComputer.Compute(ctx, records)
	if err != nil {
		return nil, err
	}

	groups := p.Aggregator.Aggregate(samples)
	for key, group := range groups {
		if group.N < len(records) {
			log.Debug().
				Str("group", key.String()).
				Int("n", group.N).
				Int("rows", len(records)).
				Msg("patients excluded from group because of missing volumes")
		}
	}

	return p.ReportEmitter.Emit(groups, precision), nil
}

func openInput(path string) (*os.File, error) {
	notFound := func(err error) error {
		return volerr.ErrInputNotFound.
			Msg("cannot read input file %s", path).
			WithExtras(volerr.Extras{"file": path}).
			WithCause(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, notFound(err)
	}
	if info.IsDir() {
		return nil, notFound(errors.New("path is a directory"))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, notFound(err)
	}
	return file, nil
}
