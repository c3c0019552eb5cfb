package search

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "findanything/internal/search"

// Dispatch outcomes recorded on the dispatch counter
const (
	OutcomeProvider  = "provider"
	OutcomeFallback  = "fallback"
	OutcomeSkipped   = "skipped"
	OutcomeDiscarded = "discarded"
)

type metrics struct {
	dispatches metric.Int64Counter
	latency    metric.Float64Histogram
}

func newMetrics(mp metric.MeterProvider) *metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	m := &metrics{}
	var err error
	m.dispatches, err = meter.Int64Counter("search.dispatches",
		metric.WithDescription("Dispatch cycles by outcome"))
	if err != nil {
		otel.Handle(err)
	}
	m.latency, err = meter.Float64Histogram("search.provider.duration",
		metric.WithDescription("Results Provider round trip time"),
		metric.WithUnit("s"))
	if err != nil {
		otel.Handle(err)
	}
	return m
}

func (m *metrics) outcome(name string) {
	if m.dispatches == nil {
		return
	}
	m.dispatches.Add(context.Background(), 1, metric.WithAttributes(attribute.String("outcome", name)))
}

func (m *metrics) providerLatency(d time.Duration, failed bool) {
	if m.latency == nil {
		return
	}
	m.latency.Record(context.Background(), d.Seconds(), metric.WithAttributes(attribute.Bool("failed", failed)))
}
