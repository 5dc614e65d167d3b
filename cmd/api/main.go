// @title           Home-services marketplace gateway
// @version         1.0
// @description     Session gateway for the home-services marketplace: visitor sessions, route guards and the mock reservation backend.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeservice/marketplace/internal/api"
	"github.com/homeservice/marketplace/internal/core/ports"
	"github.com/homeservice/marketplace/internal/core/service"
	"github.com/homeservice/marketplace/internal/infrastructure/backend"
	"github.com/homeservice/marketplace/internal/infrastructure/config"
	"github.com/homeservice/marketplace/internal/infrastructure/db/fixtures"
	"github.com/homeservice/marketplace/internal/infrastructure/db/memory"
	"github.com/homeservice/marketplace/internal/infrastructure/db/mongo"
	"github.com/homeservice/marketplace/internal/infrastructure/db/redis"
	infrahttp "github.com/homeservice/marketplace/internal/infrastructure/http"
	"github.com/homeservice/marketplace/internal/infrastructure/http/handlers"
	"github.com/homeservice/marketplace/internal/infrastructure/queue"
	"github.com/homeservice/marketplace/pkg/logger"
)

const (
	devJWTSecret    = "dev-only-secret"
	shutdownTimeout = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "homeservice-gateway"})
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "homeservice-gateway",
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("gateway stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	probes := map[string]handlers.Probe{}

	// --- Redis: client storage and the check-id cache ---
	var rdb *goredis.Client
	if cfg.StorageDriver == config.StorageRedis || cfg.Backend.BaseURL != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			if cfg.StorageDriver == config.StorageRedis {
				return err
			}
			log.Warn().Err(err).Msg("redis unavailable, backend cache disabled")
		} else {
			rdb = client
			defer rdb.Close()
			probes["redis"] = handlers.RedisProbe(rdb)
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		}
	}

	var storage ports.StorageProvider
	if cfg.StorageDriver == config.StorageRedis {
		storage = redis.NewStorageProvider(rdb)
	} else {
		storage = memory.NewStorageProvider()
	}

	// --- Reservations ---
	var reservationRepo ports.ReservationRepository
	switch cfg.ReservationBackend {
	case config.ReservationsMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func(c *mongodriver.Client) {
			if err := mongo.Disconnect(c); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}(client)

		repo := mongo.NewReservationRepository(db, fixtures.Reservations())
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := repo.SeedIfEmpty(ctx); err != nil {
			return err
		}
		reservationRepo = repo
		probes["mongo"] = handlers.MongoProbe(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
	default:
		reservationRepo = memory.NewReservationRepository(memory.NewReservationStore(fixtures.Reservations()))
	}
	reservations := service.NewReservationService(reservationRepo, logger.Component("reservations"))

	// --- Identity: mock directory, optionally fronted by the real backend ---
	accounts, err := memory.NewAccountRepository(fixtures.Accounts(), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	directory := service.NewAuthService(accounts, cfg.JWTSecret, cfg.TokenTTL)

	var (
		authBackend  ports.AuthBackend         = directory
		notifBackend ports.NotificationBackend = memory.NewNotificationFeed(fixtures.Notifications())
	)
	if cfg.Backend.BaseURL != "" {
		client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Component("backend"))
		if rdb != nil {
			client.UseRedisCache(rdb, cfg.Backend.CacheTTL)
		}
		authBackend, notifBackend = client, client
		log.Info().Str("base_url", cfg.Backend.BaseURL).Msg("using external backend")
	}

	// --- Notifications: fire-and-forget mark-all-read ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.MarkReadWorkers, notifBackend, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)
	defer func() {
		cancelWorkers()
		dispatcher.Wait()
	}()
	notifications := service.NewNotificationService(notifBackend, dispatcher, logger.Component("notifications"))

	e := api.NewRouter(api.Deps{
		Log:            log,
		JWTSecret:      cfg.JWTSecret,
		Storage:        storage,
		ClientCookie:   cfg.ClientCookie,
		SecureCookie:   !cfg.IsDevelopment(),
		SocialTTL:      cfg.SocialProfileTTL,
		LoginPerMinute: cfg.LoginPerMinute,
		Directory:      directory,
		Backend:        authBackend,
		Reservations:   reservations,
		Notifications:  notifications,
		Ops:            infrahttp.Ops{Probes: probes},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting gateway")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
