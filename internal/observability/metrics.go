// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package observability provides Prometheus metrics for the auth engine.
package observability

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/oops"

	"github.com/holomush/authcore/internal/auth"
)

// Metrics records auth outcomes, token checks and hashing latency. It
// implements auth.Metrics and auth.HashObserver.
type Metrics struct {
	OutcomesTotal         *prometheus.CounterVec
	TokenValidationsTotal *prometheus.CounterVec
	PasswordHashSeconds   *prometheus.HistogramVec
}

var (
	_ auth.Metrics      = (*Metrics)(nil)
	_ auth.HashObserver = (*Metrics)(nil)
)

// NewMetrics creates and registers the authcore metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authcore_outcomes_total",
				Help: "Total number of auth operations by operation, outcome and reject reason",
			},
			[]string{"operation", "outcome", "reason"},
		),
		TokenValidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authcore_token_validations_total",
				Help: "Total number of session token validations by result",
			},
			[]string{"result"},
		),
		PasswordHashSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "authcore_password_hash_seconds",
				Help:    "Time spent hashing or verifying passwords, excluding queueing",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(m.OutcomesTotal, m.TokenValidationsTotal, m.PasswordHashSeconds)
	return m
}

// NewRegistry returns a registry with the Go and process collectors and the
// authcore metrics registered.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return registry, NewMetrics(registry)
}

// RecordOutcome implements auth.Metrics.
func (m *Metrics) RecordOutcome(operation, outcome string, reason auth.RejectReason) {
	m.OutcomesTotal.WithLabelValues(operation, outcome, string(reason)).Inc()
}

// RecordTokenValidation implements auth.Metrics.
func (m *Metrics) RecordTokenValidation(result string) {
	m.TokenValidationsTotal.WithLabelValues(result).Inc()
}

// ObserveHash implements auth.HashObserver.
func (m *Metrics) ObserveHash(op string, d time.Duration) {
	m.PasswordHashSeconds.WithLabelValues(op).Observe(d.Seconds())
}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return oops.Code("METRICS_GATHER_FAILED").Wrap(err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return oops.Code("METRICS_WRITE_FAILED").With("family", mf.GetName()).Wrap(err)
		}
	}
	return nil
}
