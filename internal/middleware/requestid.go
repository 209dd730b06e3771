package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is read from the request and echoed on the response.
const RequestIDHeader = "X-Request-ID"

// requestIDCtxKey is the Gin context key used to store the request ID.
const requestIDCtxKey = "request_id"

// maxRequestIDLen bounds client-supplied ids before they reach the logs.
const maxRequestIDLen = 128

// RequestID reuses a client X-Request-ID or generates a UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID from the request context.
func GetRequestID(c *gin.Context) string {
	v, _ := c.Get(requestIDCtxKey)
	s, _ := v.(string)
	return s
}
