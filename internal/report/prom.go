package report

import (
	"fmt"
	"io"
	"sort"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// Metric names written by WriteProm.
const (
	MetricStress          = "stressgauge_stress_percentage"
	MetricMembership      = "stressgauge_membership_degree"
	MetricRuleActivation  = "stressgauge_rule_activation"
	MetricHistoryEntries  = "stressgauge_history_entries"
	MetricHistoryAverage  = "stressgauge_history_average"
	MetricHistoryMin      = "stressgauge_history_min"
	MetricHistoryMax      = "stressgauge_history_max"
	MetricHistoryTrendPct = "stressgauge_history_trend_percentage"
)

// WriteProm writes r in the Prometheus text exposition format, families
// sorted by name.
func WriteProm(w io.Writer, r *Report) error {
	families := promFamilies(r)
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("report: prom: %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// ParseProm decodes a Prometheus text exposition from rd into metric families.
func ParseProm(rd io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(rd)
	if err != nil {
		return nil, fmt.Errorf("report: parse prom: %w", err)
	}
	return mfs, nil
}

func promFamilies(r *Report) []*dto.MetricFamily {
	stress := gaugeFamily(MetricStress, "Defuzzified stress percentage (0-100).")
	stress.Metric = append(stress.Metric, gauge(r.StressAnalysis.Percentage, "label", r.StressAnalysis.Label))

	membership := gaugeFamily(MetricMembership, "Membership degree of each variable term.")
	for _, v := range []string{fuzzy.VarSleep, fuzzy.VarWorkload, fuzzy.VarScreentime, fuzzy.VarExtracurricular, fuzzy.VarStress} {
		for _, d := range r.MembershipDegrees.Of(v) {
			membership.Metric = append(membership.Metric, gauge(d.Value, "variable", v, "term", d.Term))
		}
	}

	rules := gaugeFamily(MetricRuleActivation, "Activation strength of each rule.")
	for _, a := range r.Rules {
		rules.Metric = append(rules.Metric, gauge(a.Activation, "rule", fmt.Sprint(a.ID)))
	}

	s := r.Summary
	entries := gaugeFamily(MetricHistoryEntries, "Entries in the rolling history window.")
	entries.Metric = append(entries.Metric, gauge(float64(s.Count)))
	avg := gaugeFamily(MetricHistoryAverage, "Mean stress over the history window.")
	avg.Metric = append(avg.Metric, gauge(s.Average))
	lo := gaugeFamily(MetricHistoryMin, "Minimum stress over the history window.")
	lo.Metric = append(lo.Metric, gauge(s.Min))
	hi := gaugeFamily(MetricHistoryMax, "Maximum stress over the history window.")
	hi.Metric = append(hi.Metric, gauge(s.Max))
	trend := gaugeFamily(MetricHistoryTrendPct, "Relative change of recent versus older stress.")
	trend.Metric = append(trend.Metric, gauge(s.Trend.Percentage, "direction", string(s.Trend.Direction)))

	out := []*dto.MetricFamily{stress, entries, avg, lo, hi, trend}
	if len(membership.Metric) > 0 {
		out = append(out, membership)
	}
	if len(rules.Metric) > 0 {
		out = append(out, rules)
	}
	return out
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// gauge builds one sample; labels are name/value pairs.
func gauge(v float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: proto.Float64(v)}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	return m
}
