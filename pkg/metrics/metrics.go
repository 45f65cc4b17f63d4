package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelie_api_requests_total",
			Help: "Number of backend API requests",
		},
		[]string{"method", "resource", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "atelie_api_latency_seconds",
			Help:    "Backend API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)
	MalformedPayloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelie_cfg_malformed_payloads_total",
			Help: "CFG query payloads that could not be decoded",
		},
		[]string{"identifier"},
	)
	CostCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "atelie_cost_calculations_total",
			Help: "Quote cost calculations by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		APILatency,
		MalformedPayloads,
		CostCalculations,
	)
}

// Sample is one flattened counter value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Counters gathers every atelie counter from g, sorted by name and labels.
func Counters(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "atelie_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				pairs = append(pairs, l.GetName()+"="+l.GetValue())
			}
			out = append(out, Sample{Name: mf.GetName(), Labels: strings.Join(pairs, ","), Value: m.GetCounter().GetValue()})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}
