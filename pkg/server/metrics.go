/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncClientConnection()
	IncRequests(cmd string)
	ObserveResponseNS(cmd string, t int64)
	IncEvaluations(kind string)
}

type metricsStore struct {
	registry          *prometheus.Registry
	ClientConnections prometheus.Counter
	Requests          *prometheus.CounterVec
	ResponseNS        *prometheus.HistogramVec
	Evaluations       *prometheus.CounterVec
}

var (
	CommandLabel = "cmd"
	KindLabel    = "kind"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	// Expressions are small; most responses land well under a millisecond.
	buckets := prometheus.ExponentialBuckets(float64(10*time.Microsecond), 2, 14)

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		ClientConnections: factory.NewCounter(prometheus.CounterOpts{
			Name: "sigc_client_connections",
			Help: "The total number of client connections",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigc_requests",
			Help: "Request counts for the sigc commands",
		}, []string{CommandLabel}),
		ResponseNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sigc_response_ns",
			Help:    "Response times on commands",
			Buckets: buckets,
		}, []string{CommandLabel}),
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sigc_evaluations",
			Help: "Pipeline runs by outcome kind",
		}, []string{KindLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncClientConnection() {
	ms.ClientConnections.Inc()
}

func (ms *metricsStore) IncRequests(cmd string) {
	ms.Requests.With(prometheus.Labels{CommandLabel: cmd}).Inc()
}

func (ms *metricsStore) ObserveResponseNS(cmd string, t int64) {
	ms.ResponseNS.
		With(prometheus.Labels{CommandLabel: cmd}).
		Observe(float64(t))
}

func (ms *metricsStore) IncEvaluations(kind string) {
	ms.Evaluations.With(prometheus.Labels{KindLabel: kind}).Inc()
}
