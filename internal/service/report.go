package service

import (
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/util"
)

type ReportEmitter struct{}

func NewReportEmitter() *ReportEmitter {
	return &ReportEmitter{}
}

// Emit orders groups by ROI (GTV, GTV_N, PTV_DP) and then by phase pair ((1,2), (2,3)), skipping
// groups without samples. Reported numbers are rounded to precision decimals; groups is not
// modified.
func (e *ReportEmitter) Emit(groups map[model.GroupKey]*model.StatGroup, precision int) []model.VolumeChangeStat {
	report := make([]model.VolumeChangeStat, 0, len(groups))
	for _, roi := range model.ROIs {
		for _, pair := range model.PhasePairs {
			group, ok := groups[model.GroupKey{ROI: roi, Pair: pair}]
			if !ok || group.N == 0 {
				log.Debug().
					Str("roi", roi.String()).
					Str("phases", pair.String()).
					Msg("no samples, group omitted from report")
				continue
			}
			report = append(report, toVolumeChangeStat(group, precision))
		}
	}
	return report
}

func toVolumeChangeStat(group *model.StatGroup, precision int) model.VolumeChangeStat {
	stdDev := null.Float{}
	if group.StdDev.Valid {
		stdDev = null.FloatFrom(util.RoundFloat64(group.StdDev.Float64, precision))
	}
	return model.VolumeChangeStat{
		ROI:              group.Key.ROI.String(),
		VolumePhaseStart: util.RoundFloat64(group.VolumePhaseStart, precision),
		PhaseStart:       int(group.Key.Pair.Start()),
		PhaseEnd:         int(group.Key.Pair.End()),
		Average:          util.RoundFloat64(group.Average, precision),
		StdDev:           stdDev,
		N:                group.N,
	}
}
