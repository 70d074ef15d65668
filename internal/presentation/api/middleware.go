package api

import (
	"math"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/chatlobby/internal/infrastructure/json"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/rs/cors"
)

func (app *Application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow, retryAfter := app.ratelimiter.Allow(r.RemoteAddr); !allow {
			app.logger.Warn(logging.RequestResponse, logging.RateLimiting, "rate limit exceeded", map[logging.ExtraKey]any{
				logging.ClientIp: r.RemoteAddr,
				logging.Path:     r.URL.Path,
			})
			json.WriteRateLimitError(w, int(math.Ceil(retryAfter.Seconds())))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) corsMiddleware() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: app.config.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: app.config.HTTP.AllowedHeaders,
	}).Handler
}

func (app *Application) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		app.logger.Info(logging.RequestResponse, logging.Api, "request", map[logging.ExtraKey]any{
			logging.ClientIp:   r.RemoteAddr,
			logging.Method:     r.Method,
			logging.Path:       r.URL.Path,
			logging.StatusCode: ww.Status(),
			logging.BodySize:   ww.BytesWritten(),
			logging.Latency:    time.Since(start).String(),
		})
	})
}

// metricsMiddleware labels requests by route pattern so room IDs do not
// explode the label set.
func (app *Application) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		app.metrics.ObserveRequest(r.Method, route, status, time.Since(start))
	})
}

// sameOriginMiddleware rejects state-changing requests a browser sent from
// another site. Browsers attach Origin (or at least Referer) to cross-site
// POSTs; requests carrying neither come from scripts and tools, not pages.
func (app *Application) sameOriginMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		source := strings.TrimSpace(r.Header.Get("Origin"))
		if source == "" {
			source = strings.TrimSpace(r.Referer())
		}
		if source != "" && !app.trustedOrigin(source, r) {
			app.logger.Warn(logging.RequestResponse, logging.Api, "cross-origin request rejected", map[logging.ExtraKey]any{
				logging.ClientIp: r.RemoteAddr,
				logging.Path:     r.URL.Path,
				logging.Origin:   source,
			})
			json.WriteError(w, http.StatusForbidden, "cross-origin request rejected")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// trustedOrigin accepts the server's own host and the configured CORS
// origins. An opaque "null" origin is never trusted.
func (app *Application) trustedOrigin(raw string, r *http.Request) bool {
	if raw == "null" {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	if strings.EqualFold(parsed.Host, r.Host) {
		return true
	}
	origin := parsed.Scheme + "://" + parsed.Host
	return slices.ContainsFunc(app.config.HTTP.AllowedOrigins, func(allowed string) bool {
		return strings.EqualFold(strings.TrimSuffix(allowed, "/"), origin)
	})
}
