package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// Sheet names, in workbook order.
const (
	SheetSummary     = "Summary"
	SheetMemberships = "Memberships"
	SheetRules       = "Rules"
	SheetHistory     = "History"
)

// WriteXLSX writes r as an Excel workbook.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1; rename it rather than leave it empty.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	for _, name := range []string{SheetMemberships, SheetRules, SheetHistory} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("report: xlsx: new sheet %s: %w", name, err)
		}
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetSummary, summaryRows(r)},
		{SheetMemberships, membershipRows(r)},
		{SheetRules, ruleRows(r)},
		{SheetHistory, historyRows(r)},
	}
	for _, s := range sheets {
		if err := writeRows(f, s.name, s.rows); err != nil {
			return fmt.Errorf("report: xlsx: sheet %s: %w", s.name, err)
		}
	}

	idx, err := f.GetSheetIndex(SheetSummary)
	if err != nil {
		return fmt.Errorf("report: xlsx: %w", err)
	}
	f.SetActiveSheet(idx)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("report: xlsx: write: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func summaryRows(r *Report) [][]any {
	rows := [][]any{
		{"Field", "Value"},
		{"Report ID", r.ID},
		{"Timestamp", r.Timestamp.Format(time.RFC3339)},
		{"Stress %", r.StressAnalysis.Percentage},
		{"Label", r.StressAnalysis.Label},
		{"Sleep (h)", r.Inputs.Sleep},
		{"Workload", r.Inputs.Workload},
		{"Screen time (h)", r.Inputs.Screentime},
		{"Extracurricular", r.Inputs.Extracurricular},
		{"History entries", r.Summary.Count},
		{"History average", r.Summary.Average},
		{"Trend", string(r.Summary.Trend.Direction)},
		{"Trend %", r.Summary.Trend.Percentage},
	}
	if len(r.Recommendations) > 0 {
		rows = append(rows, []any{}, []any{"Category", "Type", "Message", "Action"})
		for _, rec := range r.Recommendations {
			rows = append(rows, []any{rec.Category, string(rec.Type), rec.Message, rec.Action})
		}
	}
	return rows
}

func membershipRows(r *Report) [][]any {
	rows := [][]any{{"Variable", "Term", "Degree"}}
	vars := []string{fuzzy.VarSleep, fuzzy.VarWorkload, fuzzy.VarScreentime, fuzzy.VarExtracurricular, fuzzy.VarStress}
	for _, v := range vars {
		for _, d := range r.MembershipDegrees.Of(v) {
			rows = append(rows, []any{v, d.Term, d.Value})
		}
	}
	return rows
}

func ruleRows(r *Report) [][]any {
	rows := [][]any{{"Rule", "Description", "Activation", "Stress", "Output", "Active"}}
	defs := fuzzy.Rules()
	for i, a := range r.Rules {
		desc := ""
		if i < len(defs) && defs[i].ID == a.ID {
			desc = defs[i].Description()
		}
		rows = append(rows, []any{a.ID, desc, a.Activation, a.Stress, fuzzy.Label(a.Stress), a.Active})
	}
	return rows
}

func historyRows(r *Report) [][]any {
	rows := [][]any{{"ID", "Timestamp", "Stress", "Label", "Sleep", "Workload", "Screen time", "Extracurricular"}}
	for _, e := range r.History {
		rows = append(rows, []any{
			e.ID, e.Timestamp.Format(time.RFC3339), e.Stress, e.Label,
			e.Inputs.Sleep, e.Inputs.Workload, e.Inputs.Screentime, e.Inputs.Extracurricular,
		})
	}
	return rows
}
