package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ScanOutcomeSuccess is the outcome label of a scan that stamped a card.
const ScanOutcomeSuccess = "success"

// BusinessMetrics records use case operations and scan outcomes.
type BusinessMetrics interface {
	// RecordOperation counts one call of a use case operation.
	// domain is "token", "business" or "ledger"; status is "success", "error" or a scan rejection reason.
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records how long a use case operation took, in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordScan records the outcome of one scan. Stamps, new cards and rewards are only
	// counted when outcome is ScanOutcomeSuccess.
	RecordScan(ctx context.Context, outcome string, newCard, rewardEarned bool)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	scanCounter      metric.Int64Counter
	stampCounter     metric.Int64Counter
	newCardCounter   metric.Int64Counter
	rewardCounter    metric.Int64Counter
}

// NewBusinessMetrics creates the OpenTelemetry instruments under namespace (e.g. "stampd").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)
	m := &businessMetrics{}

	counters := []struct {
		target      *metric.Int64Counter
		name        string
		description string
		unit        string
	}{
		{&m.operationCounter, "operations_total", "Total number of use case operations", "{operation}"},
		{&m.scanCounter, "scans_total", "Total number of scans by outcome", "{scan}"},
		{&m.stampCounter, "stamps_given_total", "Total number of stamps applied to cards", "{stamp}"},
		{&m.newCardCounter, "cards_created_total", "Total number of cards created by a first scan", "{card}"},
		{&m.rewardCounter, "rewards_earned_total", "Total number of scans that reached a reward threshold", "{reward}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(
			fmt.Sprintf("%s_%s", namespace, c.name),
			metric.WithDescription(c.description),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
		*c.target = counter
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of use case operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}
	m.durationHisto = durationHisto

	return m, nil
}

func operationAttributes(domain, operation, status string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), operationAttributes(domain, operation, status))
}

func (b *businessMetrics) RecordScan(ctx context.Context, outcome string, newCard, rewardEarned bool) {
	b.scanCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if outcome != ScanOutcomeSuccess {
		return
	}

	b.stampCounter.Add(ctx, 1)
	if newCard {
		b.newCardCounter.Add(ctx, 1)
	}
	if rewardEarned {
		b.rewardCounter.Add(ctx, 1)
	}
}

// NoOpBusinessMetrics is used when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordScan(ctx context.Context, outcome string, newCard, rewardEarned bool) {}
