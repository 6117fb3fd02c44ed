/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type statsCollector struct {
	srv *Server

	uptime *prometheus.Desc
	active *prometheus.Desc
}

func NewStatsCollector(srv *Server) prometheus.Collector {
	return &statsCollector{
		srv: srv,
		uptime: prometheus.NewDesc(
			"sigc_uptime_seconds",
			"Seconds since the server started.",
			nil, nil,
		),
		active: prometheus.NewDesc(
			"sigc_active_connections",
			"Number of clients currently connected.",
			nil, nil,
		),
	}
}

// Describe implements Collector.
func (c *statsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.uptime
	ch <- c.active
}

// Collect implements Collector.
func (c *statsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, c.srv.Uptime().Seconds())
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(c.srv.ActiveConnections()))
}
