package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader    = "Idempotency-Key"
	idempotencyKeyPrefix = "idempotency:"
	idempotencyTTL       = 24 * time.Hour
)

// replayedResponse is the stored outcome of a completed mutating request.
type replayedResponse struct {
	Status      int             `json:"status"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
}

// captureWriter tees the response body so it can be stored for replay.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays stored responses for requests carrying an
// Idempotency-Key header. A rider whose reservation call timed out or came
// back with a contention error can retry with the same key without filing
// a second request; the first completed outcome is returned as-is.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storeKey := idempotencyKeyPrefix + key

		if data, err := redisClient.Get(ctx, storeKey).Bytes(); err == nil {
			var stored replayedResponse
			if json.Unmarshal(data, &stored) == nil {
				contentType := stored.ContentType
				if contentType == "" {
					contentType = "application/json"
				}
				c.Data(stored.Status, contentType, stored.Body)
				c.Abort()
				return
			}
		}
		// A redis miss or failure falls through to the real handler.

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Server errors and contention responses are not stored, so the
		// retry reaches the reservation engine again.
		status := c.Writer.Status()
		if status >= http.StatusInternalServerError || status == http.StatusConflict {
			return
		}

		stored := replayedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		}
		if data, err := json.Marshal(stored); err == nil {
			_ = redisClient.Set(ctx, storeKey, data, idempotencyTTL).Err()
		}
	}
}
