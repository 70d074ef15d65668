package api

import (
	"expvar"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hilthontt/chatlobby/internal/infrastructure/configs"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/metrics"
	"github.com/hilthontt/chatlobby/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/chatlobby/internal/infrastructure/ws"
	healthHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/health"
	messagesHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/messages"
	pagesHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/pages"
	roomsHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/rooms"
	usersHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/users"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "chatlobby"

type Application struct {
	config          configs.Config
	healthHandler   *healthHandler.Handler
	pagesHandler    *pagesHandler.Handler
	usersHandler    *usersHandler.Handler
	roomsHandler    *roomsHandler.Handler
	messagesHandler *messagesHandler.Handler
	hub             *ws.Hub
	metrics         *metrics.Metrics
	logger          logging.Logger
	ratelimiter     ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	healthHandler *healthHandler.Handler,
	pagesHandler *pagesHandler.Handler,
	usersHandler *usersHandler.Handler,
	roomsHandler *roomsHandler.Handler,
	messagesHandler *messagesHandler.Handler,
	hub *ws.Hub,
	metrics *metrics.Metrics,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:          config,
		healthHandler:   healthHandler,
		pagesHandler:    pagesHandler,
		usersHandler:    usersHandler,
		roomsHandler:    roomsHandler,
		messagesHandler: messagesHandler,
		hub:             hub,
		metrics:         metrics,
		logger:          logger,
		ratelimiter:     ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(app.metricsMiddleware)

	if app.config.RateLimiter.Enabled && app.ratelimiter != nil {
		r.Use(app.rateLimiterMiddleware)
	}
	r.Use(app.corsMiddleware())
	r.Use(app.sameOriginMiddleware)

	r.Get("/", app.pagesHandler.IndexHandler)
	r.Get("/ws", app.hub.ServeHTTP)

	r.Post("/username", app.usersHandler.SetUsernameHandler)

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", app.roomsHandler.CreateRoomHandler)
		r.Post("/{roomId}/join", app.roomsHandler.JoinRoomHandler)
	})
	r.Post("/join", app.roomsHandler.JoinByCodeHandler)
	r.Post("/leave", app.roomsHandler.LeaveRoomHandler)
	r.Post("/copy-code", app.roomsHandler.CopyCodeHandler)
	r.Post("/messages", app.messagesHandler.SendMessageHandler)

	r.Get("/api/state", app.pagesHandler.StateHandler)

	r.Get("/health", app.healthHandler.GetHealth)
	r.Get("/healthz", app.healthHandler.GetHealth)
	r.Handle("/metrics", app.metrics.Handler())
	r.Handle("/debug/vars", expvar.Handler())

	return otelhttp.NewHandler(r, serviceName,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func (app *Application) NewServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         app.Addr(),
		Handler:      handler,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		IdleTimeout:  time.Minute,
	}
}

func (app *Application) Addr() string {
	return fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port)
}
