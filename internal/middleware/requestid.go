package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"uasz.sn/utilisateursapi/pkg/response"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or issues a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
