package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomvercaut/c-art-2-volume-changes/internal/model"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/pkg/volerr"
	"github.com/tomvercaut/c-art-2-volume-changes/internal/service"
)

func TestRequiredColumns(t *testing.T) {
	assert.Equal(t, []string{
		"Patient ID",
		"GTV_phase_1", "GTV_phase_2", "GTV_phase_3",
		"GTV_N_phase_1", "GTV_N_phase_2", "GTV_N_phase_3",
		"PTV_DP_phase_1", "PTV_DP_phase_2", "PTV_DP_phase_3",
	}, service.RequiredColumns())
}

func TestLoadRecords(t *testing.T) {
	loader := service.NewRecordLoader()

	records, err := loader.Load(context.Background(), strings.NewReader(table(header,
		"P-001;10.5;8;5;1;0;;3.25; 2 ;1e1",
		"P-002;;;;;;;;;",
	)), "in.csv")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "P-001", first.PatientID)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 10.5, first.Volume(model.ROIGTV, model.Phase1).Float64)
	assert.Equal(t, 8.0, first.Volume(model.ROIGTV, model.Phase2).Float64)
	assert.True(t, first.Volume(model.ROIGTVN, model.Phase2).Valid, "expect zero to be a present measurement")
	assert.Equal(t, 0.0, first.Volume(model.ROIGTVN, model.Phase2).Float64)
	assert.False(t, first.Volume(model.ROIGTVN, model.Phase3).Valid, "expect empty cell to be missing")
	assert.Equal(t, 2.0, first.Volume(model.ROIPTVDP, model.Phase2).Float64, "expect surrounding blanks to be ignored")
	assert.Equal(t, 10.0, first.Volume(model.ROIPTVDP, model.Phase3).Float64)

	second := records[1]
	assert.Equal(t, 3, second.Line)
	for _, roi := range model.ROIs {
		for _, phase := range model.Phases {
			assert.False(t, second.Volume(roi, phase).Valid)
		}
	}
}

func TestLoadResolvesColumnsByName(t *testing.T) {
	shuffled := "PTV_DP_phase_3;GTV_phase_2;Patient ID;GTV_N_phase_1;GTV_phase_1;comment;GTV_N_phase_2;GTV_phase_3;PTV_DP_phase_1;GTV_N_phase_3;PTV_DP_phase_2"
	records, err := service.NewRecordLoader().Load(context.Background(), strings.NewReader(table(shuffled,
		"9;2;X;4;1;free text;5;3;7;6;8",
	)), "in.csv")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "X", r.PatientID)
	expected := 1.0
	for _, roi := range model.ROIs {
		for _, phase := range model.Phases {
			assert.Equal(t, expected, r.Volume(roi, phase).Float64, roi.ColumnName(phase))
			expected++
		}
	}
}

func TestLoadToleratesBOM(t *testing.T) {
	records, err := service.NewRecordLoader().Load(context.Background(), strings.NewReader("\ufeff"+scenarioTable), "in.csv")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadKeepsDuplicatePatients(t *testing.T) {
	records, err := service.NewRecordLoader().Load(context.Background(), strings.NewReader(table(header,
		"A;1;1;1;;;;;;",
		"A;2;2;2;;;;;;",
	)), "in.csv")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadEmptyBody(t *testing.T) {
	records, err := service.NewRecordLoader().Load(context.Background(), strings.NewReader(header+"\n"), "in.csv")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadErrors(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected *volerr.VolumeError
		contains []string
	}

	testCases := []testCase{
		{
			name:     "empty input",
			input:    "",
			expected: volerr.ErrSchema,
			contains: []string{"no header row", "file=in.csv"},
		},
		{
			name:     "missing columns",
			input:    table("Patient ID;GTV_phase_1;GTV_phase_2;GTV_phase_3", "A;1;2;3"),
			expected: volerr.ErrSchema,
			contains: []string{"GTV_N_phase_1", "PTV_DP_phase_3"},
		},
		{
			name:     "missing identifier",
			input:    table(strings.TrimPrefix(header, "Patient ID;"), "1;2;3;4;5;6;7;8;9"),
			expected: volerr.ErrSchema,
			contains: []string{"Patient ID"},
		},
		{
			name:     "duplicated column",
			input:    table(header+";GTV_phase_2", "A;1;2;3;4;5;6;7;8;9;2"),
			expected: volerr.ErrSchema,
			contains: []string{"more than once", "GTV_phase_2"},
		},
		{
			name:     "too few fields",
			input:    table(header, "A;1;2;3;4;5;6;7;8;9", "B;1;2;3"),
			expected: volerr.ErrRowFormat,
			contains: []string{"line 3", "different number of fields"},
		},
		{
			name:     "too many fields",
			input:    table(header, "A;1;2;3;4;5;6;7;8;9;10"),
			expected: volerr.ErrRowFormat,
			contains: []string{"line 2"},
		},
		{
			name:     "not a number",
			input:    table(header, "A;1;2;3;4;5;6;7;8;9", "B;1;2;abc;4;5;6;7;8;9"),
			expected: volerr.ErrRowFormat,
			contains: []string{"GTV_phase_3", "line 3", "patient_id=B", `"abc" is not a number`},
		},
		{
			name:     "decimal comma",
			input:    table(header, "A;1,5;2;3;4;5;6;7;8;9"),
			expected: volerr.ErrRowFormat,
			contains: []string{"GTV_phase_1"},
		},
		{
			name:     "negative volume",
			input:    table(header, "A;1;2;3;4;5;6;7;8;-9"),
			expected: volerr.ErrRowFormat,
			contains: []string{"PTV_DP_phase_3", "negative"},
		},
		{
			name:     "not finite",
			input:    table(header, "A;1;2;3;NaN;5;6;7;8;9"),
			expected: volerr.ErrRowFormat,
			contains: []string{"GTV_N_phase_1", "finite"},
		},
		{
			name:     "bare quote",
			input:    table(header, `A;1;2;3;4;5"x;6;7;8;9`),
			expected: volerr.ErrRowFormat,
			contains: []string{"line 2"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := service.NewRecordLoader().Load(context.Background(), strings.NewReader(tc.input), "in.csv")
			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, errors.Is(err, tc.expected), "expect %s, got %v", tc.expected.ErrorCode, err)
			for _, s := range tc.contains {
				assert.Contains(t, err.Error(), s)
			}
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.NewRecordLoader().Load(ctx, strings.NewReader(scenarioTable), "in.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
