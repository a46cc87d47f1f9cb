package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/quota"
)

// RequestIDHeader carries the correlation id of a request.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key under which the id is stored.
const requestIDKey = "requestID"

// RequestID honors an incoming correlation id or mints a fresh one, and
// echoes it on the response so clients can reference the request in reports.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestID returns the correlation id attached by the RequestID middleware.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Admission gates every API request through the fixed-window limiter. The
// rate limit metadata headers are attached to permitted and denied responses
// alike. A quota store fault denies: the gate protects the backend, so the
// safe default under uncertainty is to shed load.
func Admission(limiter quota.Limiter, log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.ClientIP()
		if identity == "" {
			identity = "127.0.0.1"
		}

		decision, err := limiter.Allow(c.Request.Context(), identity)

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if err != nil {
			log.Error("Admission gate could not reach the quota store", err, map[string]interface{}{
				"requestId": requestID(c),
				"clientIp":  identity,
			})
			if m != nil {
				m.IncrementAdmissions(metrics.AdmissionErrored)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, rateLimited())
			return
		}

		if !decision.Permitted {
			log.Error("Rate limit exceeded", nil, map[string]interface{}{
				"requestId": requestID(c),
				"clientIp":  identity,
				"code":      "RATELIMIT_EXCEEDED",
			})
			if m != nil {
				m.IncrementAdmissions(metrics.AdmissionBlocked)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, rateLimited())
			return
		}

		if m != nil {
			m.IncrementAdmissions(metrics.AdmissionPermitted)
		}
		c.Next()
	}
}

// Timing records request durations per endpoint.
func Timing(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.RecordRequestDuration(start, endpoint)
	}
}
