package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/infrastructure/configs"
	authHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/auth"
	healthHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/health"
	liveHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/live"
	roomHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/rooms"
	walletHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/wallet"
)

type Application struct {
	config        configs.Config
	authHandler   *authHandler.Handler
	roomHandler   *roomHandler.Handler
	walletHandler *walletHandler.Handler
	liveHandler   *liveHandler.Handler
	healthHandler *healthHandler.Handler
	logger        *zap.SugaredLogger
}

func NewApplication(
	config configs.Config,
	authHandler *authHandler.Handler,
	roomHandler *roomHandler.Handler,
	walletHandler *walletHandler.Handler,
	liveHandler *liveHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger *zap.SugaredLogger,
) *Application {
	return &Application{
		config:        config,
		authHandler:   authHandler,
		roomHandler:   roomHandler,
		walletHandler: walletHandler,
		liveHandler:   liveHandler,
		healthHandler: healthHandler,
		logger:        logger,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.loggerMiddleware)
	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		// The websocket route lives outside this group; Timeout would kill
		// long-lived connections.
		r.Use(middleware.Timeout(60 * time.Second))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.authHandler.SignupHandler)
			r.Post("/login", app.authHandler.LoginHandler)
			r.Get("/me", app.authHandler.MeHandler)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", app.roomHandler.ListRoomsHandler)
			r.Post("/create", app.roomHandler.CreateRoomHandler)
			r.Get("/{roomId}", app.roomHandler.GetRoomHandler)
			r.Delete("/{roomId}/{callerId}", app.roomHandler.DeleteRoomHandler)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/add-referral-points", app.walletHandler.AddReferralPointsHandler)
			r.Get("/referred-count/{userId}", app.walletHandler.ReferredCountHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
	})

	r.Get("/ws", app.liveHandler.ServeWS)

	return otelhttp.NewHandler(r, "chessmate-api")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", srv.Addr)

	return nil
}
