package batch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// DefaultWorkers is used when Run is given a non-positive worker count.
const DefaultWorkers = 4

// Outcome is the result of one record.
type Outcome struct {
	Line   int           `json:"line"`
	ID     string        `json:"id,omitempty"`
	Result *fuzzy.Result `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`

	Err error `json:"-"`
}

func (o *Outcome) fail(err error) {
	o.Err = err
	o.Error = err.Error()
}

// OK reports whether the record evaluated successfully.
func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }

// Run evaluates recs with at most workers evaluations in flight.
// The returned slice always has len(recs) entries in input order; the error
// is ctx.Err() if the context ended before every record was scheduled.
func Run(ctx context.Context, recs []Record, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	out := make([]Outcome, len(recs))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	var runErr error
	for i, rec := range recs {
		out[i] = Outcome{Line: rec.Line, ID: rec.ID}
		if rec.Err != nil {
			out[i].fail(rec.Err)
			continue
		}
		if runErr == nil {
			runErr = ctx.Err()
		}
		if runErr == nil {
			runErr = sem.Acquire(ctx, 1)
		}
		if runErr != nil {
			out[i].fail(runErr)
			continue
		}

		wg.Add(1)
		go func(o *Outcome, in fuzzy.Inputs) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := fuzzy.Evaluate(in)
			if err != nil {
				o.fail(err)
				return
			}
			o.Result = res
		}(&out[i], rec.Inputs)
	}
	wg.Wait()

	if runErr != nil {
		slog.Warn("batch: cancelled before all records were scheduled", "records", len(recs), "err", runErr)
	}
	slog.Debug("batch: finished", "records", len(recs), "workers", workers)
	return out, runErr
}

// EvaluateCSV is ReadCSV followed by Run.
func EvaluateCSV(ctx context.Context, r io.Reader, workers int) ([]Outcome, error) {
	recs, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return Run(ctx, recs, workers)
}

// Stats summarizes the successful outcomes of a batch.
type Stats struct {
	Total     int            `json:"total"`
	Evaluated int            `json:"evaluated"`
	Failed    int            `json:"failed"`
	Mean      float64        `json:"mean"`
	Median    float64        `json:"median"`
	P90       float64        `json:"p90"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Labels    map[string]int `json:"labels"`
}

// Aggregate computes Stats over outcomes.
func Aggregate(outcomes []Outcome) Stats {
	s := Stats{Total: len(outcomes), Labels: make(map[string]int)}
	values := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			continue
		}
		s.Evaluated++
		values = append(values, o.Result.StressPercentage)
		s.Labels[o.Result.StressLabel]++
	}
	if len(values) == 0 {
		return s
	}
	// stats only fails on empty input, which is excluded above.
	s.Mean, _ = stats.Mean(values)
	s.Median, _ = stats.Median(values)
	s.P90, _ = stats.Percentile(values, 90)
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	return s
}
