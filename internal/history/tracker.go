package history

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// Defaults applied when NewTracker is given non-positive values.
const (
	DefaultWindow     = 20
	DefaultStableBand = 3.0
)

// trendSpan is how many entries each side of the trend comparison uses.
const trendSpan = 5

// Direction is the sign of a Trend.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Entry is one recorded evaluation.
type Entry struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Stress    float64      `json:"stress"`
	Label     string       `json:"label"`
	Inputs    fuzzy.Inputs `json:"inputs"`
}

// Trend describes how recent stress compares with older stress.
type Trend struct {
	Direction  Direction `json:"direction"`
	Percentage float64   `json:"percentage"` // relative change, always ≥ 0
}

// Summary is the descriptive view of the current window.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Trend   Trend   `json:"trend"`
}

// Tracker holds the rolling window.
type Tracker struct {
	mu         sync.Mutex
	window     int
	stableBand float64
	entries    []Entry

	now   func() time.Time // injectable for deterministic tests
	newID func() string
}

// NewTracker returns a Tracker keeping the newest window entries.
func NewTracker(window int, stableBand float64) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	if stableBand <= 0 {
		stableBand = DefaultStableBand
	}
	return &Tracker{
		window:     window,
		stableBand: stableBand,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Record appends res to the window and returns the stored entry.
func (t *Tracker) Record(res *fuzzy.Result) Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := Entry{
		ID:        t.newID(),
		Timestamp: t.now().UTC(),
		Stress:    res.StressPercentage,
		Label:     res.StressLabel,
		Inputs:    res.InputValues,
	}
	t.entries = append(t.entries, e)
	if over := len(t.entries) - t.window; over > 0 {
		t.entries = append([]Entry(nil), t.entries[over:]...)
	}

	slog.Debug("history: recorded",
		"id", e.ID, "stress", e.Stress, "label", e.Label, "size", len(t.entries))
	return e
}

// Entries returns a copy of the window, oldest first.
func (t *Tracker) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of entries currently held.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Window returns the configured capacity.
func (t *Tracker) Window() int { return t.window }

// Clear drops every entry.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
	slog.Info("history: cleared")
}

// Summary computes descriptive statistics and the trend for the window.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	values := make([]float64, len(t.entries))
	for i, e := range t.entries {
		values[i] = e.Stress
	}
	band := t.stableBand
	t.mu.Unlock()

	return Summarize(values, band)
}

// Summarize builds a Summary from stress values ordered oldest first.
func Summarize(values []float64, stableBand float64) Summary {
	s := Summary{Count: len(values), Trend: Trend{Direction: DirectionStable}}
	if len(values) == 0 {
		return s
	}
	// stats only fails on empty input, which is excluded above.
	s.Average, _ = stats.Mean(values)
	s.Min, _ = stats.Min(values)
	s.Max, _ = stats.Max(values)
	s.Trend = ComputeTrend(values, stableBand)
	return s
}

// ComputeTrend compares the newest five values with up to five of the oldest
// values that precede them.
func ComputeTrend(values []float64, stableBand float64) Trend {
	stable := Trend{Direction: DirectionStable}
	n := len(values)
	if n < 2 {
		return stable
	}

	recent := values[max(0, n-trendSpan):]
	older := values[:min(trendSpan, max(0, n-trendSpan))]
	if len(older) == 0 {
		return stable
	}

	recentAvg, err := stats.Mean(recent)
	if err != nil {
		return stable
	}
	olderAvg, err := stats.Mean(older)
	if err != nil {
		return stable
	}

	diff := recentAvg - olderAvg
	if math.Abs(diff) < stableBand {
		return stable
	}

	var pct float64
	if olderAvg != 0 {
		pct = math.Abs(diff / olderAvg * 100)
	}
	if diff > 0 {
		return Trend{Direction: DirectionUp, Percentage: pct}
	}
	return Trend{Direction: DirectionDown, Percentage: pct}
}
