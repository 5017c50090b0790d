package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stressgauge/stressgauge/internal/advice"
	"github.com/stressgauge/stressgauge/internal/fuzzy"
	"github.com/stressgauge/stressgauge/internal/history"
)

// Format selects a writer.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatProm Format = "prom"
)

// ErrUnknownFormat is returned for a format other than json, xlsx or prom.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatXLSX, FormatProm:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// StressAnalysis is the headline figure of a report.
type StressAnalysis struct {
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// Report is one exported snapshot.
type Report struct {
	ID                string                  `json:"id"`
	Timestamp         time.Time               `json:"timestamp"`
	StressAnalysis    StressAnalysis          `json:"stress_analysis"`
	Inputs            fuzzy.Inputs            `json:"inputs"`
	MembershipDegrees fuzzy.Degrees           `json:"membership_degrees"`
	Rules             []fuzzy.RuleActivation  `json:"rule_activations"`
	Recommendations   []advice.Recommendation `json:"recommendations"`
	History           []history.Entry         `json:"history"`
	Summary           history.Summary         `json:"summary"`
}

// Build snapshots res together with recs and the tracker's window. tr may be
// nil, in which case the history is empty.
func Build(res *fuzzy.Result, tr *history.Tracker, recs []advice.Recommendation, now time.Time) *Report {
	r := &Report{
		ID:        uuid.NewString(),
		Timestamp: now.UTC(),
		StressAnalysis: StressAnalysis{
			Percentage: res.StressPercentage,
			Label:      res.StressLabel,
		},
		Inputs:            res.InputValues,
		MembershipDegrees: res.MembershipDegrees,
		Rules:             append([]fuzzy.RuleActivation(nil), res.Rules...),
		Recommendations:   recs,
		History:           []history.Entry{},
		Summary:           history.Summarize(nil, history.DefaultStableBand),
	}
	if r.Recommendations == nil {
		r.Recommendations = []advice.Recommendation{}
	}
	if tr != nil {
		r.History = tr.Entries()
		r.Summary = tr.Summary()
	}
	return r
}

// Write encodes r to w in the given format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatProm:
		return WriteProm(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile writes r to path, replacing any existing file.
func WriteFile(path string, r *Report, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create: %w", err)
	}
	if err := Write(f, r, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close: %w", err)
	}
	slog.Info("report: written", "path", path, "format", format, "id", r.ID)
	return nil
}

// DefaultFilename is the app's export name, stress-report-<unix millis>.<ext>.
func DefaultFilename(format Format, now time.Time) string {
	return fmt.Sprintf("stress-report-%d.%s", now.UnixMilli(), format)
}
