package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for a single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// NewClusterClient creates a new traced Redis client for a Redis cluster
func NewClusterClient(client *redis.ClusterClient) *Client {
	return &Client{cmdable: client}
}

func (c *Client) startSpan(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return otel.Tracer("redis").Start(ctx, "redis."+op,
		trace.WithAttributes(
			attribute.String("redis.key", key),
			attribute.String("redis.operation", op),
			attribute.String("redis.client", "app-docvault"),
		),
	)
}

func finishSpan(span trace.Span, start time.Time, err error) {
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "success")
	}
	span.SetAttributes(attribute.Int64("redis.duration_ms", time.Since(start).Milliseconds()))
	span.End()
}

// Get wraps Redis GET with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "get", key)
	cmd := c.cmdable.Get(ctx, key)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Set wraps Redis SET with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "set", key)
	span.SetAttributes(attribute.String("redis.expiration", expiration.String()))
	cmd := c.cmdable.Set(ctx, key, value, expiration)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Del wraps Redis DEL with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	start := time.Now()
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, span := c.startSpan(ctx, "del", key)
	cmd := c.cmdable.Del(ctx, keys...)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// TTL wraps Redis TTL with tracing
func (c *Client) TTL(ctx context.Context, key string) *redis.DurationCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "ttl", key)
	cmd := c.cmdable.TTL(ctx, key)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Expire wraps Redis EXPIRE with tracing
func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "expire", key)
	cmd := c.cmdable.Expire(ctx, key, expiration)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Ping wraps Redis PING with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	start := time.Now()
	ctx, span := c.startSpan(ctx, "ping", "")
	cmd := c.cmdable.Ping(ctx)
	finishSpan(span, start, cmd.Err())
	return cmd
}
