package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented records the latency and outcome of every backend call.
type Instrumented struct {
	next     Store
	duration *prometheus.HistogramVec
}

// NewInstrumented wraps next and registers its histogram with reg.
func NewInstrumented(next Store, reg prometheus.Registerer) (*Instrumented, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_store_operation_duration_seconds",
		Help:    "Latency of document store operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection", "result"})

	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	return &Instrumented{next: next, duration: duration}, nil
}

func (s *Instrumented) observe(op, collection string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.duration.WithLabelValues(op, collection, result).Observe(time.Since(start).Seconds())
}

// Load implements Store.
func (s *Instrumented) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	start := time.Now()
	records, err := s.next.Load(ctx, collection)
	s.observe("load", collection, start, err)
	return records, err
}

// Save implements Store.
func (s *Instrumented) Save(ctx context.Context, collection string, records []json.RawMessage) error {
	start := time.Now()
	err := s.next.Save(ctx, collection, records)
	s.observe("save", collection, start, err)
	return err
}

// Names implements Lister when the backend does.
func (s *Instrumented) Names(ctx context.Context) ([]string, error) {
	if l, ok := s.next.(Lister); ok {
		return l.Names(ctx)
	}
	return AllCollections, nil
}

// Unwrap returns the wrapped backend.
func (s *Instrumented) Unwrap() Store {
	return s.next
}
