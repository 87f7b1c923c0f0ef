package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voxrelay/observability"
)

// Metrics records request counts and latency on collector. Unmatched
// routes are grouped under one label to bound cardinality.
func Metrics(collector *observability.HTTPCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		collector.ObserveRequest(c.Request.Method, path, c.Writer.Status(), c.Request.ContentLength, time.Since(start))
	}
}
