package main

import (
	"context"
	"errors"
	"expvar"
	"flag"
	"log"
	"net/http"
	"os"
	"runtime"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/hilthontt/chatlobby/internal/infrastructure/configs"
	"github.com/hilthontt/chatlobby/internal/infrastructure/generator"
	"github.com/hilthontt/chatlobby/internal/infrastructure/logging"
	"github.com/hilthontt/chatlobby/internal/infrastructure/metrics"
	"github.com/hilthontt/chatlobby/internal/infrastructure/ratelimiter"
	"github.com/hilthontt/chatlobby/internal/infrastructure/repository"
	"github.com/hilthontt/chatlobby/internal/infrastructure/settings"
	"github.com/hilthontt/chatlobby/internal/infrastructure/tracing"
	"github.com/hilthontt/chatlobby/internal/infrastructure/ws"
	"github.com/hilthontt/chatlobby/internal/lobby"
	"github.com/hilthontt/chatlobby/internal/presentation/api"
	healthHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/health"
	messagesHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/messages"
	pagesHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/pages"
	roomsHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/rooms"
	usersHandler "github.com/hilthontt/chatlobby/internal/presentation/handler/users"
	"github.com/hilthontt/chatlobby/internal/presentation/views"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configFlag := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := configs.Load(configs.DetermineConfigPath(*configFlag))
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(logging.ConfigFrom(cfg.Logging))

	shutdownTracer, err := tracing.InitTracer(tracing.NewConfig("chatlobby-http", cfg.Tracing))
	if err != nil {
		logger.Fatal(logging.General, logging.Startup, "failed to init tracer", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}

	names, err := settings.NewStore(cfg.Storage.Dir)
	if err != nil {
		logger.Fatal(logging.IO, logging.Storage, "failed to open settings store", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}

	ids, err := generator.NewGenerator()
	if err != nil {
		logger.Fatal(logging.General, logging.Startup, "failed to create id generator", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}

	recorder := metrics.New()
	controller := lobby.New(repository.NewRoomRepository(), names, ids,
		lobby.WithToaster(lobby.NewToaster(cfg.Toast.Visible, cfg.Toast.Fade, ids.NewID)),
		lobby.WithRecorder(recorder),
		lobby.WithLogger(logger),
	)

	renderer, err := views.NewRenderer()
	if err != nil {
		logger.Fatal(logging.General, logging.Startup, "failed to parse templates", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := ws.NewHub(logger, nil)
	go hub.Run(hubCtx)

	health := healthHandler.NewHandler()
	limiter := ratelimiter.NewFixedWindowRateLimiter(cfg.RateLimiter.RequestsPerTimeFrame, cfg.RateLimiter.TimeFrame)

	app := api.NewApplication(
		*cfg,
		health,
		pagesHandler.NewHandler(controller, renderer, logger),
		usersHandler.NewHandler(controller),
		roomsHandler.NewHandler(controller, cfg.HTTP.CopyTimeout),
		messagesHandler.NewHandler(controller),
		hub,
		recorder,
		logger,
		limiter,
	)

	go app.StreamToasts(hubCtx, controller.Toaster())

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("ws_clients", expvar.Func(func() any {
		return hub.ClientCount()
	}))

	srv := app.NewServer(app.Mount())
	go func() {
		logger.Info(logging.General, logging.Startup, "server started", map[logging.ExtraKey]any{
			logging.Path: "http://" + app.Addr(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(logging.General, logging.Startup, "server stopped", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				health.MarkUnhealthy()
				logger.Info(logging.General, logging.Shutdown, "shutting down server", nil)
				return srv.Shutdown(ctx)
			},
			"ws-hub": func(ctx context.Context) error {
				stopHub()
				select {
				case <-hub.Done():
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
			"rate-limiter": func(context.Context) error {
				limiter.Close()
				return nil
			},
			"tracer": func(ctx context.Context) error {
				return shutdownTracer(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.Info(logging.General, logging.Shutdown, "server exited", map[logging.ExtraKey]any{
		"ExitCode": exitCode,
	})
	_ = logger.Sync()
	os.Exit(exitCode)
}
