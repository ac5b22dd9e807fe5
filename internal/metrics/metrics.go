// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the notes server.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "notes"

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// Metrics groups the collectors registered on a single registry.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	blacklistPurged    prometheus.Counter
	blacklistPurgeRuns *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		blacklistPurged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blacklist_purged_tokens_total",
				Help:      "Expired refresh tokens removed from the blacklist",
			},
		),
		blacklistPurgeRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "blacklist_purge_runs_total",
				Help:      "Blacklist purge runs by result (ok, error)",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.blacklistPurged,
		m.blacklistPurgeRuns,
	)

	return m
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/v1/notes/12/ -> /api/v1/notes/{id}/.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for a served HTTP request.
func (m *Metrics) RecordRequest(method, path string, statusCode int, duration time.Duration) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	m.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordBlacklistPurge records one purge run. err != nil counts as a failed run.
func (m *Metrics) RecordBlacklistPurge(removed int64, err error) {
	if err != nil {
		m.blacklistPurgeRuns.WithLabelValues("error").Inc()
		return
	}
	m.blacklistPurgeRuns.WithLabelValues("ok").Inc()
	m.blacklistPurged.Add(float64(removed))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
