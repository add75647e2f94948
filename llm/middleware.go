package llm

import (
	"context"
	"sync"
	"time"

	"github.com/BaSui01/roundtable/llm/retry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Handler processes a request and returns a response.
type Handler func(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

// Middleware wraps a handler with additional functionality.
type Middleware func(next Handler) Handler

// Chain represents a middleware chain.
type Chain struct {
	middlewares []Middleware
	mu          sync.RWMutex
}

// NewChain creates a new middleware chain.
func NewChain(middlewares ...Middleware) *Chain {
	return &Chain{middlewares: middlewares}
}

// Use adds middleware to the chain. The first middleware added is the outermost.
func (c *Chain) Use(m Middleware) *Chain {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.middlewares = append(c.middlewares, m)
	return c
}

// Then wraps a handler with all middleware.
func (c *Chain) Then(h Handler) Handler {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

// Len returns the number of middleware.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.middlewares)
}

// wrappedProvider 让中间件链对上层透明：调用方仍只看到 Provider。
type wrappedProvider struct {
	inner   Provider
	handler Handler
}

// Wrap returns a Provider whose Completion runs through chain.
// A nil or empty chain returns p unchanged.
func Wrap(p Provider, chain *Chain) Provider {
	if chain == nil || chain.Len() == 0 {
		return p
	}
	return &wrappedProvider{inner: p, handler: chain.Then(p.Completion)}
}

func (w *wrappedProvider) Completion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	return w.handler(ctx, req)
}

func (w *wrappedProvider) Name() string { return w.inner.Name() }

// LoggingMiddleware logs request/response details.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "llm"))
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			start := time.Now()
			logger.Debug("completion request",
				zap.String("trace_id", req.TraceID),
				zap.String("model", req.Model),
				zap.Int("messages", len(req.Messages)),
			)

			resp, err := next(ctx, req)

			duration := time.Since(start)
			if err != nil {
				logger.Warn("completion failed",
					zap.String("trace_id", req.TraceID),
					zap.Duration("duration", duration),
					zap.Error(err),
				)
				return resp, err
			}
			logger.Debug("completion response",
				zap.String("trace_id", req.TraceID),
				zap.Int("total_tokens", resp.Usage.TotalTokens),
				zap.Duration("duration", duration),
			)
			return resp, nil
		}
	}
}

// TimeoutMiddleware adds timeout to requests. A request-level Timeout wins over d.
func TimeoutMiddleware(d time.Duration) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			timeout := d
			if req.Timeout > 0 {
				timeout = req.Timeout
			}
			if timeout <= 0 {
				return next(ctx, req)
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, req)
		}
	}
}

// RateLimitMiddleware paces outgoing calls with a token bucket.
func RateLimitMiddleware(limiter *rate.Limiter) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			if err := limiter.Wait(ctx); err != nil {
				return nil, &Error{
					Code:    ErrRateLimited,
					Message: "local rate limiter wait aborted",
					Cause:   err,
				}
			}
			return next(ctx, req)
		}
	}
}

// RetryMiddleware retries retryable *Error failures according to r.
func RetryMiddleware(r retry.Retryer) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			return retry.DoWithResultTyped[*ChatResponse](r, ctx, func() (*ChatResponse, error) {
				return next(ctx, req)
			})
		}
	}
}

// NewRetryer builds a retryer that only retries errors marked Retryable.
func NewRetryer(maxRetries int, logger *zap.Logger) retry.Retryer {
	policy := retry.DefaultRetryPolicy()
	policy.MaxRetries = maxRetries
	policy.Retryable = IsRetryable
	return retry.NewBackoffRetryer(policy, logger)
}

// EmptyCompletionGuard rejects responses without usable text.
func EmptyCompletionGuard() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			resp, err := next(ctx, req)
			if err != nil {
				return nil, err
			}
			if _, err := FirstContent(resp); err != nil {
				return nil, err
			}
			return resp, nil
		}
	}
}

// MetricsCollector defines metrics collection interface.
type MetricsCollector interface {
	RecordRequest(provider, model string, duration time.Duration, err error)
	RecordTokens(provider, model string, usage ChatUsage)
}

// MetricsMiddleware collects request metrics.
func MetricsMiddleware(provider string, collector MetricsCollector) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			collector.RecordRequest(provider, req.Model, time.Since(start), err)
			if err == nil && resp != nil {
				collector.RecordTokens(provider, req.Model, resp.Usage)
			}
			return resp, err
		}
	}
}

// TracingMiddleware opens one span per completion call.
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
			ctx, span := tracer.Start(ctx, "llm.completion",
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("llm.model", req.Model),
					attribute.Int("llm.messages", len(req.Messages)),
					attribute.String("llm.trace_id", req.TraceID),
				),
			)
			defer span.End()

			resp, err := next(ctx, req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, string(CodeOf(err)))
				return resp, err
			}
			span.SetAttributes(attribute.Int("llm.total_tokens", resp.Usage.TotalTokens))
			return resp, nil
		}
	}
}
