package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"go.uber.org/zap"

	infraauth "github.com/chessmate-app/chessmate/internal/infrastructure/auth"
	"github.com/chessmate-app/chessmate/internal/infrastructure/configs"
	"github.com/chessmate-app/chessmate/internal/infrastructure/repository"
	"github.com/chessmate-app/chessmate/internal/infrastructure/tracing"
	"github.com/chessmate-app/chessmate/internal/infrastructure/ws"
	"github.com/chessmate-app/chessmate/internal/presentation/api"
	authHandler "github.com/chessmate-app/chessmate/internal/presentation/handler/auth"
	"github.com/chessmate-app/chessmate/internal/presentation/handler/health"
	"github.com/chessmate-app/chessmate/internal/presentation/handler/live"
	"github.com/chessmate-app/chessmate/internal/presentation/handler/rooms"
	"github.com/chessmate-app/chessmate/internal/presentation/handler/wallet"
)

const (
	serviceName = "chessmate-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	userRepository := repository.NewUserRepository()
	roomRepository := repository.NewRoomRepository()

	wsCore := ws.NewCore(logger)
	go wsCore.Run(ctx)

	tokens := infraauth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authH := authHandler.NewHandler(userRepository, tokens)
	roomH := rooms.NewHandler(roomRepository, userRepository, wsCore, logger)
	walletH := wallet.NewHandler(userRepository, tokens, cfg.Wallet.ReferralBonus, logger)
	liveH := live.NewHandler(wsCore, userRepository, logger)
	healthH := health.NewHandler()

	app := api.NewApplication(*cfg, authH, roomH, walletH, liveH, healthH, logger)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	logger.Fatal(app.Run(mux))
}
