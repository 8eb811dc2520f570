package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// documentsIn counts entities handed to the pipeline, successful or not.
	documentsIn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_documents_in_total",
			Help: "Total number of entities handed to the document pipeline",
		},
		[]string{"entity_type"},
	)

	// documentsOut counts entities that passed through the pipeline,
	// successful or not. It tracks documentsIn; build failures are reported
	// through buildFailures instead of a gap between in and out.
	documentsOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_documents_out_total",
			Help: "Total number of entities processed through the document pipeline",
		},
		[]string{"entity_type"},
	)

	// buildFailures counts entities whose document build failed.
	buildFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "indexer_document_build_failures_total",
			Help: "Total number of entities whose document build failed",
		},
		[]string{"entity_type"},
	)

	// buildDuration observes how long one document build takes.
	buildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "indexer_document_build_duration_seconds",
			Help:    "Duration of a single document build in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity_type"},
	)
)
