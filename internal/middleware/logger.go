package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key under which the request id is stored.
const ContextKeyRequestID = "request_id"

const headerRequestID = "X-Request-ID"

// RequestID propagates an incoming X-Request-ID or generates one, storing it in
// the context and echoing it on the response so CSV artifacts and log lines can
// be correlated with a client call.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// Logger logs one line per request: id, method, path, status, latency, client IP.
// Health probes are skipped to keep readiness polling out of the logs.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" || path == "/readyz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		requestID := c.GetString(ContextKeyRequestID)
		log.Printf("[%s] %s %s %d %s %s",
			requestID,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Round(time.Microsecond),
			c.ClientIP(),
		)
	}
}

// Recovery recovers from handler panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
