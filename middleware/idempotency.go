package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"colornotes/utils"

	"github.com/gin-gonic/gin"
)

const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore records keys of in-flight or completed requests.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// IdempotencyMiddleware turns a repeated POST carrying the same
// Idempotency-Key into 409 Conflict. Requests without the header, and every
// request when store is nil, pass through. Store failures let the request
// through rather than blocking writes.
func IdempotencyMiddleware(store IdempotencyStore, ttl time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if store == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > 255 {
			utils.BadRequest(c, "Idempotency-Key too long")
			return
		}

		ctx := c.Request.Context()
		reserved, err := store.Reserve(ctx, key, ttl)
		if err != nil {
			logger.Warn("Idempotency store unavailable", "error", err, "request_id", c.GetString(RequestIDKey))
			c.Next()
			return
		}
		if !reserved {
			TrackError("duplicate_submission")
			utils.Conflict(c, "Duplicate submission")
			return
		}

		// Failed attempts, panics included, may be retried with the same key.
		completed := false
		defer func() {
			if completed && c.Writer.Status() < http.StatusBadRequest {
				return
			}
			if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
				logger.Warn("Failed to release idempotency key", "error", err)
			}
		}()

		c.Next()
		completed = true
	}
}
