package app

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	appconfig "github.com/Amr-Abdelaziz/bolt-evcharger/internal/config"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/db"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/geo"
	httpserver "github.com/Amr-Abdelaziz/bolt-evcharger/internal/http"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/handlers"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/http/middleware"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/password"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/redisstore"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/redisx"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/repository"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/service"
	"github.com/Amr-Abdelaziz/bolt-evcharger/internal/ws"

	goredis "github.com/redis/go-redis/v9"
)

// App wires dependencies for the service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds the application graph.
func New(ctx context.Context, cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	pool, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Bootstrap(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	var redisClient *goredis.Client
	var registry service.SessionRegistry
	if cfg.Redis.Addr != "" {
		redisClient, err = redisx.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			pool.Close()
			return nil, err
		}
		registry = redisstore.NewSessionRegistry(redisClient, cfg.JWTExpiration())
	}

	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	chargerRepo := repository.NewChargerRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	sessionSvc := service.NewSessionService(userRepo, profileRepo, registry, hasher, tokenSvc, logger)
	chargerSvc := service.NewChargerService(chargerRepo, logger)

	hub := ws.NewHub(logger)
	reservationSvc := service.NewReservationService(reservationRepo, chargerRepo, hub, service.ReservationConfig{
		EnergyUnits: cfg.Reservation.EnergyUnits,
		Duration:    cfg.ReservationDuration(),
	}, logger)

	locator := geo.NewProvider(cfg.Location.Endpoint)

	deps := httpserver.RouterDeps{
		AuthHandlers:        handlers.NewAuthHandlers(sessionSvc, logger),
		ProfileHandlers:     handlers.NewProfileHandlers(sessionSvc, logger),
		WalletHandlers:      handlers.NewWalletHandlers(sessionSvc, logger),
		ChargerHandlers:     handlers.NewChargerHandlers(chargerSvc, locator, logger),
		ReservationHandlers: handlers.NewReservationHandlers(reservationSvc, chargerSvc, logger),
		FeedHandler:         handlers.NewFeedHandler(hub, logger),
		HealthHandler:       handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, middleware.Auth(tokenSvc, sessionSvc))
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     pool,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
