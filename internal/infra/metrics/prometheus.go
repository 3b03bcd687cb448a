package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framepipe_runs_total",
		Help: "Total number of pipeline runs, by status",
	}, []string{"status"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "framepipe_stage_duration_seconds",
		Help:    "Duration of pipeline stages",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"stage"})

	FramesExtractedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framepipe_frames_extracted_total",
		Help: "Total number of frames extracted across all runs",
	})

	FramesEncodedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framepipe_frames_encoded_total",
		Help: "Total number of frames encoded into output videos",
	})

	ActiveRuns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "framepipe_active_runs",
		Help: "Number of currently active pipeline runs",
	})
)
