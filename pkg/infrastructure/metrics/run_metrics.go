// Package metrics records the outcome of a reconciliation run as Prometheus
// gauges and writes them in the node exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yintu/pmc/pkg/application/dto"
)

// RunMetrics holds the gauges of one run on a private registry
type RunMetrics struct {
	registry *prometheus.Registry

	orders        prometheus.Gauge
	rows          *prometheus.GaugeVec
	shortageRMB   prometheus.Gauge
	orderValueRMB prometheus.Gauge
	materials     *prometheus.GaugeVec
	diagnostics   *prometheus.GaugeVec
	stageSeconds  *prometheus.GaugeVec
	lastRun       prometheus.Gauge
}

// NewRunMetrics creates and registers the run gauges
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		orders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pmc_orders",
			Help: "Production orders in the report.",
		}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pmc_reconciled_rows",
			Help: "Reconciled rows by completeness tag, excluded no-data rows included.",
		}, []string{"completeness"}),
		shortageRMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pmc_shortage_amount_rmb",
			Help: "Total shortage cost in RMB.",
		}),
		orderValueRMB: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pmc_order_value_rmb",
			Help: "Total deduplicated order value in RMB.",
		}),
		materials: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pmc_materials",
			Help: "Short materials by supplier resolution.",
		}, []string{"supplier"}),
		diagnostics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pmc_diagnostics",
			Help: "Diagnostics raised during the run by severity.",
		}, []string{"severity"}),
		stageSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pmc_stage_duration_seconds",
			Help: "Wall time of each pipeline stage.",
		}, []string{"stage"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pmc_last_run_timestamp_seconds",
			Help: "Unix time the report was generated.",
		}),
	}
	m.registry.MustRegister(
		m.orders,
		m.rows,
		m.shortageRMB,
		m.orderValueRMB,
		m.materials,
		m.diagnostics,
		m.stageSeconds,
		m.lastRun,
	)
	return m
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStage records how long a pipeline stage took
func (m *RunMetrics) ObserveStage(stage string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.stageSeconds.WithLabelValues(stage).Set(elapsed.Seconds())
}

// ObserveReport records the headline numbers of an assembled report
func (m *RunMetrics) ObserveReport(report *dto.Report) {
	if m == nil || report == nil {
		return
	}
	s := report.Summary

	m.orders.Set(float64(s.TotalOrders))
	for _, c := range s.Completeness {
		m.rows.WithLabelValues(c.Label).Set(float64(c.Rows))
	}
	m.shortageRMB.Set(s.TotalShortageAmountRMB.InexactFloat64())
	m.orderValueRMB.Set(s.TotalOrderValueRMB.InexactFloat64())
	m.materials.WithLabelValues("found").Set(float64(s.MaterialsWithSupplier))
	m.materials.WithLabelValues("not_found").Set(float64(s.MaterialsNoSupplier))

	counts := map[string]int{dto.SeverityInfo.String(): 0, dto.SeverityWarning.String(): 0}
	for _, d := range report.Diagnostics {
		counts[d.Severity.String()]++
	}
	for severity, n := range counts {
		m.diagnostics.WithLabelValues(severity).Set(float64(n))
	}

	if !report.GeneratedAt.IsZero() {
		m.lastRun.Set(float64(report.GeneratedAt.Unix()))
	}
}

// WriteTextfile writes the gauges atomically to path for the node exporter textfile collector
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
