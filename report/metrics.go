package report

import (
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/rvhazard/schedule"
)

// Metrics holds the gauges describing one analysis run.
type Metrics struct {
	registry *prom.Registry

	Instructions *prom.GaugeVec
	NOPs         *prom.GaugeVec
	Cycles       *prom.GaugeVec
	Hazards      *prom.GaugeVec
}

// NewMetrics creates the gauges on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		Instructions: prom.NewGaugeVec(
			prom.GaugeOpts{
				Name: "rvhazard_instructions",
				Help: "Instructions in the output of a strategy",
			},
			[]string{"strategy"}),
		NOPs: prom.NewGaugeVec(
			prom.GaugeOpts{
				Name: "rvhazard_nops",
				Help: "Filler instructions in the output of a strategy",
			},
			[]string{"strategy"}),
		Cycles: prom.NewGaugeVec(
			prom.GaugeOpts{
				Name: "rvhazard_replay_cycles",
				Help: "Cycles to drain the output of a strategy on the replay core",
			},
			[]string{"strategy"}),
		Hazards: prom.NewGaugeVec(
			prom.GaugeOpts{
				Name: "rvhazard_hazards",
				Help: "Hazards detected in the original program",
			},
			[]string{"kind"}),
	}

	m.registry.MustRegister(m.Instructions, m.NOPs, m.Cycles, m.Hazards)
	return m
}

// Registry returns the registry the gauges live on.
func (m *Metrics) Registry() *prom.Registry {
	return m.registry
}

// Observe sets every gauge from res.
func (m *Metrics) Observe(res *schedule.Result) {
	m.Instructions.WithLabelValues("original").Set(float64(len(res.Original)))
	m.Hazards.WithLabelValues("data_no_forwarding").Set(float64(len(res.Analysis.DataNoForwarding)))
	m.Hazards.WithLabelValues("data_forwarding").Set(float64(len(res.Analysis.DataForwarding)))
	m.Hazards.WithLabelValues("control").Set(float64(len(res.Analysis.Control)))

	for _, o := range res.Outcomes {
		m.Instructions.WithLabelValues(o.Name).Set(float64(len(o.Sequence)))
		m.NOPs.WithLabelValues(o.Name).Set(float64(o.NOPs))
		if o.Replayed {
			m.Cycles.WithLabelValues(o.Name).Set(float64(o.Replay.Cycles))
		}
	}
}

// WriteTextfile writes the gauges in Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}
	return nil
}
