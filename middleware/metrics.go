package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/metrics"
)

// RequestMetrics counts every request by method, route template and status.
// Unmatched paths are grouped under "unmatched" to bound label cardinality.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
