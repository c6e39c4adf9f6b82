// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package metrics exports loader and view measurements to Prometheus.
//
// A Collector implements rayview.Observer:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(reg)
//	l := loader.New(src, loader.WithObserver(c))
//	el, _ := view.New(l, s, view.WithObserver(c))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gogpu/rayview"
)

// Namespace prefixes every metric name.
const Namespace = "rayview"

// Error stages used as the "stage" label of the errors counter.
const (
	StageLoad   = "load"
	StageRender = "render"
	StagePaint  = "paint"
)

// Collector records load and frame metrics.
type Collector struct {
	LoadSeconds  *prometheus.HistogramVec
	FrameSeconds prometheus.Histogram
	FrameBytes   prometheus.Gauge
	FramesTotal  *prometheus.CounterVec
	ErrorsTotal  *prometheus.CounterVec
	ModuleLoaded prometheus.Gauge
}

var _ rayview.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg creates unregistered metrics.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		LoadSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "load_seconds",
				Help:      "Compute module initialization time in seconds by phase",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"phase"},
		),
		FrameSeconds: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "frame_render_seconds",
				Help:      "Time the compute module spent producing one frame",
				Buckets:   prometheus.DefBuckets,
			},
		),
		FrameBytes: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "frame_bytes",
				Help:      "Size of the last rendered frame in bytes",
			},
		),
		FramesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "frames_total",
				Help:      "Frames by pipeline step",
			},
			[]string{"step"},
		),
		ErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "errors_total",
				Help:      "Errors by stage and kind",
			},
			[]string{"stage", "kind"},
		),
		ModuleLoaded: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "module_loaded",
				Help:      "1 once a compute module loaded successfully",
			},
		),
	}
}

// LoadFinished implements rayview.Observer.
func (c *Collector) LoadFinished(timing rayview.LoadTiming, err error) {
	c.LoadSeconds.WithLabelValues("acquire").Observe(timing.Acquire.Seconds())
	c.LoadSeconds.WithLabelValues("setup").Observe(timing.Setup.Seconds())
	c.LoadSeconds.WithLabelValues("total").Observe(timing.Total().Seconds())
	if err != nil {
		c.ErrorsTotal.WithLabelValues(StageLoad, Kind(err)).Inc()
		return
	}
	c.ModuleLoaded.Set(1)
}

// FrameRendered implements rayview.Observer.
func (c *Collector) FrameRendered(took time.Duration, size int, err error) {
	c.FrameSeconds.Observe(took.Seconds())
	if err != nil {
		c.ErrorsTotal.WithLabelValues(StageRender, Kind(err)).Inc()
		return
	}
	c.FrameBytes.Set(float64(size))
	c.FramesTotal.WithLabelValues("rendered").Inc()
}

// FramePainted implements rayview.Observer.
func (c *Collector) FramePainted(err error) {
	if err != nil {
		c.ErrorsTotal.WithLabelValues(StagePaint, Kind(err)).Inc()
		return
	}
	c.FramesTotal.WithLabelValues("painted").Inc()
}
