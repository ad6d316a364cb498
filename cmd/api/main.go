// Command api serves the Bistro Boss ordering API.
//
// @title                       Bistro Boss API
// @version                     1.0
// @description                 Menu, reviews, carts and user accounts for the Bistro Boss restaurant.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token from POST /jwt.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/api"
	"github.com/bistroboss/bistro-api/internal/api/handler"
	"github.com/bistroboss/bistro-api/internal/core/ports"
	"github.com/bistroboss/bistro-api/internal/core/service"
	"github.com/bistroboss/bistro-api/internal/infrastructure/db/mongo"
	"github.com/bistroboss/bistro-api/internal/infrastructure/db/redis"
	"github.com/bistroboss/bistro-api/internal/infrastructure/queue"
	"github.com/bistroboss/bistro-api/internal/pkg/config"
	"github.com/bistroboss/bistro-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "bistro-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	log.Info().Str("db", cfg.Mongo.Database).Msg("connected to mongodb")

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("could not create indexes; concurrent registrations may duplicate users")
	}

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	var cache ports.CatalogCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect to redis")
		}
		defer rdb.Close()
		cache = redis.NewCatalogCache(rdb, cfg.Redis.CacheTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("catalog cache enabled")
	}

	audit := queue.NewDispatcher(cfg.Audit.Workers, mongo.NewAuditRepository(db), log)
	audit.Start(ctx)

	tokens := service.NewTokenService(cfg.AccessTokenSecret, time.Now)
	users := service.NewUserService(mongo.NewUserRepository(db), audit, log)
	catalog := service.NewCatalogService(mongo.NewMenuRepository(db), mongo.NewReviewRepository(db), cache, log)
	carts := service.NewCartService(mongo.NewCartRepository(db), log)

	warnOpenRoutes(log, cfg)

	e := api.NewRouter(api.Dependencies{
		Log:               log,
		Tokens:            tokens,
		Users:             users,
		Catalog:           catalog,
		Carts:             carts,
		HealthChecks:      checks,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		GuardUserAdminOps: cfg.Security.GuardUserAdminOps,
		GuardCartWrites:   cfg.Security.GuardCartWrites,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("bistro boss is sitting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := audit.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit trail not fully written")
	}
}

func warnOpenRoutes(log zerolog.Logger, cfg *config.Config) {
	if !cfg.Security.GuardUserAdminOps {
		log.Warn().Msg("DELETE /users/:id and PATCH /users/admin/:id accept unauthenticated requests; set GUARD_USER_ADMIN_OPS=true to require an admin token")
	}
	if !cfg.Security.GuardCartWrites {
		log.Warn().Msg("POST /carts and DELETE /carts/:id accept unauthenticated requests; set GUARD_CART_WRITES=true to require a token")
	}
}
