package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key for the request ID.
	RequestIDKey = "request_id"

	// RequestIDHeader is the HTTP header used to propagate the request ID.
	RequestIDHeader = "X-Request-ID"

	clientRequestIDKey = "client_request_id"
)

// RequestID assigns every request a server-generated UUID. A caller-supplied
// X-Request-ID is kept only as a separate log field.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()

		if clientID := c.GetHeader(RequestIDHeader); clientID != "" {
			c.Set(clientRequestIDKey, clientID)
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LogEntry returns a logger entry carrying the request's ids.
func LogEntry(c *gin.Context, log *logrus.Logger) *logrus.Entry {
	fields := logrus.Fields{}

	if rid := c.GetString(RequestIDKey); rid != "" {
		fields[RequestIDKey] = rid
	}

	if cid := c.GetString(clientRequestIDKey); cid != "" {
		fields[clientRequestIDKey] = cid
	}

	return log.WithFields(fields)
}
