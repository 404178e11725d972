package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const routeUnmatched = "unmatched"

var (
	reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillswap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route template, method and status.",
	}, []string{"route", "method", "status"})

	reqSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skillswap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method"})
)

func init() { prometheus.MustRegister(reqTotal, reqSeconds) }

// Metrics route 标签取路由模板，如 /api/v1/skills/:id
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = routeUnmatched
		}
		m := c.Request.Method
		reqTotal.WithLabelValues(route, m, strconv.Itoa(c.Writer.Status())).Inc()
		reqSeconds.WithLabelValues(route, m).Observe(time.Since(start).Seconds())
	}
}
