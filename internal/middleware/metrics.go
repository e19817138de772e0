package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"uasz.sn/utilisateursapi/pkg/metrics"
)

// Metrics records count and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
