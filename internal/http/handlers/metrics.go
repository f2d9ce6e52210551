package handlers

import (
	"bytes"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var requestsTotal *prometheus.CounterVec

// InitPrometheusMetrics registers the HTTP request counter on the default
// registry. Call once at startup.
func InitPrometheusMetrics() {
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "watchlist",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)
	prometheus.MustRegister(requestsTotal)
}

// RequestLogger returns fasthttp middleware that logs method, path, status
// and duration for every request, and records the request in the
// Prometheus counter when metrics are initialized.
func RequestLogger(logger *log.Logger, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		status := ctx.Response.StatusCode()
		if requestsTotal != nil {
			requestsTotal.WithLabelValues(string(ctx.Method()), string(ctx.Path()), strconv.Itoa(status)).Inc()
		}
		logger.Info("request",
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", status,
			"duration", time.Since(start),
			"ip", ctx.RemoteAddr())
	}
}

// MetricsHandler serves the default Prometheus registry in text exposition
// format.
func MetricsHandler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to gather metrics")
			return
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
		for _, mf := range metricFamilies {
			if err := encoder.Encode(mf); err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.FmtText))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}
