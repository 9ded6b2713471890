package oracle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wordweb/metrics"
)

// Instrumented wraps an Oracle, timing and logging every call.
type Instrumented struct {
	next    Oracle
	metrics *metrics.Registry
	logger  *zap.Logger
}

// Instrument returns o wrapped with metrics and logging. Either may be nil.
func Instrument(o Oracle, m *metrics.Registry, logger *zap.Logger) *Instrumented {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{next: o, metrics: m, logger: logger}
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := metrics.OutcomeOK
	switch {
	case IsUnavailable(err):
		outcome = metrics.OutcomeUnavailable
	case err != nil:
		outcome = metrics.OutcomeError
	}
	i.metrics.RecordOracleCall(op, outcome, elapsed)

	fields := []zap.Field{zap.String("op", op), zap.String("outcome", outcome), zap.Duration("duration", elapsed)}
	if err != nil {
		i.logger.Warn("oracle call failed", append(fields, zap.Error(err))...)
		return
	}
	i.logger.Debug("oracle call", fields...)
}

// Expand implements Oracle.
func (i *Instrumented) Expand(ctx context.Context, source string, count int, exclude []string) (phrases []string, err error) {
	defer func(start time.Time) { i.observe("expand", start, err) }(time.Now())
	return i.next.Expand(ctx, source, count, exclude)
}

// Cluster implements Oracle.
func (i *Instrumented) Cluster(ctx context.Context, items []Item) (cats []Category, err error) {
	defer func(start time.Time) { i.observe("cluster", start, err) }(time.Now())
	return i.next.Cluster(ctx, items)
}

// Extract implements Oracle.
func (i *Instrumented) Extract(ctx context.Context, text string) (phrases []string, err error) {
	defer func(start time.Time) { i.observe("extract", start, err) }(time.Now())
	return i.next.Extract(ctx, text)
}

// SuggestTitle implements Oracle.
func (i *Instrumented) SuggestTitle(ctx context.Context, phrases []string) (title string, err error) {
	defer func(start time.Time) { i.observe("title", start, err) }(time.Now())
	return i.next.SuggestTitle(ctx, phrases)
}
