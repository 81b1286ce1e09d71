package utils

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceBusinessLogic starts a span for a business-logic step
func TraceBusinessLogic(ctx context.Context, operation string) (context.Context, trace.Span) {
	return otel.Tracer("business").Start(ctx, operation,
		trace.WithAttributes(
			attribute.String("logic.operation", operation),
		),
	)
}

// TraceDatabaseFind starts a span for a database lookup
func TraceDatabaseFind(ctx context.Context, collection, filter string) (context.Context, trace.Span) {
	return otel.Tracer("database").Start(ctx, "db.find",
		trace.WithAttributes(
			attribute.String("db.collection", collection),
			attribute.String("db.filter", filter),
		),
	)
}

// TraceDatabaseUpdate starts a span for a database write
func TraceDatabaseUpdate(ctx context.Context, collection, operation string) (context.Context, trace.Span) {
	return otel.Tracer("database").Start(ctx, "db."+operation,
		trace.WithAttributes(
			attribute.String("db.collection", collection),
			attribute.String("db.operation", operation),
		),
	)
}

// TraceCacheGet starts a span for a cache read
func TraceCacheGet(ctx context.Context, key string) (context.Context, trace.Span) {
	return otel.Tracer("cache").Start(ctx, "cache.get",
		trace.WithAttributes(
			attribute.String("cache.key", key),
		),
	)
}

// TraceCacheSet starts a span for a cache write
func TraceCacheSet(ctx context.Context, key string, ttl time.Duration) (context.Context, trace.Span) {
	return otel.Tracer("cache").Start(ctx, "cache.set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.String("cache.ttl", ttl.String()),
		),
	)
}

// TraceInputValidation starts a span for input validation
func TraceInputValidation(ctx context.Context, check, field string) (context.Context, trace.Span) {
	return otel.Tracer("validation").Start(ctx, "validate."+check,
		trace.WithAttributes(
			attribute.String("validation.field", field),
		),
	)
}

// RecordErrorInSpan records an error and its context in a span
func RecordErrorInSpan(span trace.Span, err error, attrs map[string]interface{}) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	for k, v := range attrs {
		span.SetAttributes(attribute.String(k, fmt.Sprintf("%v", v)))
	}
}

// AddSpanAttribute adds a single attribute to a span
func AddSpanAttribute(span trace.Span, key string, value interface{}) {
	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	default:
		span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
