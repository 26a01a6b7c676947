// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "landingkit"

// Label values shared by several collectors.
const (
	ResultOK    = "ok"
	ResultError = "error"

	TriggerAutosave = "autosave"
	TriggerExplicit = "explicit"
	TriggerClose    = "close"
)

var (
	// SavesTotal counts content persistence attempts by trigger and result.
	SavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "saves_total",
		Help:      "Content persistence attempts by trigger and result",
	}, []string{"trigger", "result"})

	// SaveDuration observes how long a persistence call takes.
	SaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "save_duration_seconds",
		Help:      "Duration of content persistence calls",
		Buckets:   prometheus.DefBuckets,
	})

	// OpenEditors tracks live editing sessions.
	OpenEditors = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "builder",
		Name:      "open_editors",
		Help:      "Editing sessions currently open",
	})

	// LeadsTotal counts lead submissions by template and result.
	LeadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leads",
		Name:      "submissions_total",
		Help:      "Lead form submissions by template and result",
	}, []string{"template", "result"})

	// RendersTotal counts public page renders by mode and cache outcome.
	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "public",
		Name:      "renders_total",
		Help:      "Public page responses by render mode and cache outcome",
	}, []string{"mode", "cache"})
)
