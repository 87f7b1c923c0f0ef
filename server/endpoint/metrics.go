package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Metrics serves a Prometheus exposition handler.
func Metrics(h http.Handler) gin.HandlerFunc {
	return gin.WrapH(h)
}
