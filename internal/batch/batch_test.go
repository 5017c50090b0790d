package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

const sampleCSV = `id,sleep,workload,screentime,extracurricular
relaxed,8,2,2,5
stressed,3,9,14,5
busy,5.5,6.5,6,5
broken,seven,5,6,5
defaults,7,5,6,5
`

func TestReadCSV(t *testing.T) {
	recs, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 5)

	assert.Equal(t, "relaxed", recs[0].ID)
	assert.Equal(t, 2, recs[0].Line)
	assert.Equal(t, fuzzy.Inputs{Sleep: 8, Workload: 2, Screentime: 2, Extracurricular: 5}, recs[0].Inputs)
	assert.NoError(t, recs[0].Err)

	assert.Equal(t, 5, recs[3].Line)
	assert.ErrorIs(t, recs[3].Err, fuzzy.ErrInvalidInput)
	assert.Contains(t, recs[3].Err.Error(), "sleep")
}

func TestReadCSV_ColumnOrderAndNoID(t *testing.T) {
	in := "Extracurricular, Screentime, Workload, Sleep\n5,14,9,3\n"
	recs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].ID)
	assert.Equal(t, fuzzy.Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5}, recs[0].Inputs)
}

func TestReadCSV_RowErrors(t *testing.T) {
	in := "sleep,workload,screentime,extracurricular\n" +
		"7,5\n" +
		"NaN,5,6,5\n" +
		"7,5,6,\n" +
		"# a comment line\n" +
		"-5,50,100,50\n"
	recs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, recs, 4)

	assert.ErrorIs(t, recs[0].Err, fuzzy.ErrInvalidInput, "short row")
	assert.ErrorIs(t, recs[1].Err, fuzzy.ErrInvalidInput, "NaN")
	assert.ErrorIs(t, recs[2].Err, fuzzy.ErrInvalidInput, "blank cell")
	assert.NoError(t, recs[3].Err, "out-of-range values are accepted")
}

func TestReadCSV_BadHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing column", "sleep,workload,screentime\n7,5,6\n"},
		{"duplicate column", "sleep,sleep,workload,screentime,extracurricular\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, ErrBadHeader)
		})
	}
}

func TestEvaluateCSV_OrderedWithPerRowErrors(t *testing.T) {
	out, err := EvaluateCSV(context.Background(), strings.NewReader(sampleCSV), 2)
	require.NoError(t, err)
	require.Len(t, out, 5)

	want := []struct {
		id     string
		ok     bool
		stress float64
	}{
		{"relaxed", true, 12.5},
		{"stressed", true, 90},
		{"busy", true, 70},
		{"broken", false, 0},
		{"defaults", true, 50},
	}
	for i, w := range want {
		assert.Equal(t, w.id, out[i].ID)
		assert.Equal(t, w.ok, out[i].OK(), out[i].ID)
		if w.ok {
			assert.InDelta(t, w.stress, out[i].Result.StressPercentage, 1e-9, out[i].ID)
		} else {
			assert.NotEmpty(t, out[i].Error)
		}
	}
}

func TestRun_ManyRecordsMatchSequential(t *testing.T) {
	var recs []Record
	for i := 0; i < 200; i++ {
		recs = append(recs, Record{
			Line: i + 2,
			ID:   fmt.Sprint(i),
			Inputs: fuzzy.Inputs{
				Sleep:           float64(i%13) * 0.9,
				Workload:        float64(i%11) * 0.9,
				Screentime:      float64(i%17) * 0.9,
				Extracurricular: float64(i%7) * 1.4,
			},
		})
	}

	out, err := Run(context.Background(), recs, 8)
	require.NoError(t, err)
	require.Len(t, out, len(recs))
	for i, rec := range recs {
		want, err := fuzzy.Evaluate(rec.Inputs)
		require.NoError(t, err)
		require.True(t, out[i].OK())
		assert.Equal(t, rec.ID, out[i].ID)
		assert.Equal(t, want.StressPercentage, out[i].Result.StressPercentage)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs := []Record{
		{Line: 2, Inputs: fuzzy.Inputs{Sleep: 7, Workload: 5, Screentime: 6, Extracurricular: 5}},
		{Line: 3, Inputs: fuzzy.Inputs{Sleep: 8, Workload: 2, Screentime: 2, Extracurricular: 5}},
	}
	out, err := Run(ctx, recs, 1)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, out, 2)
	for _, o := range out {
		assert.False(t, o.OK())
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestRun_DefaultWorkers(t *testing.T) {
	out, err := Run(context.Background(), []Record{{Inputs: fuzzy.Inputs{Sleep: 7, Workload: 5, Screentime: 6, Extracurricular: 5}}}, 0)
	require.NoError(t, err)
	assert.True(t, out[0].OK())
}

func TestAggregate(t *testing.T) {
	out, err := EvaluateCSV(context.Background(), strings.NewReader(sampleCSV), 4)
	require.NoError(t, err)

	s := Aggregate(out)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 4, s.Evaluated)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, (12.5+90+70+50)/4, s.Mean, 1e-9)
	assert.InDelta(t, 60.0, s.Median, 1e-9)
	assert.Equal(t, 12.5, s.Min)
	assert.Equal(t, 90.0, s.Max)
	assert.Equal(t, 1, s.Labels[fuzzy.LabelVeryHigh])
	assert.Equal(t, 1, s.Labels[fuzzy.LabelModerate])
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Mean)
	assert.NotNil(t, s.Labels)
}
