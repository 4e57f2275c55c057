// @title           Auth Service API
// @version         1.0
// @description     Registration, login, logout and role-based access for bearer tokens.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/api"
	"github.com/99minutos/auth-service/internal/api/handler"
	"github.com/99minutos/auth-service/internal/api/metrics"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/core/service"
	mongostore "github.com/99minutos/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/auth-service/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-service/internal/infrastructure/maintenance"
	"github.com/99minutos/auth-service/internal/pkg/config"
	"github.com/99minutos/auth-service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("auth service exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "auth-service",
		Output:  os.Stdout,
	})

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "auth-service",
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	health := map[string]handler.PingFunc{"mongodb": mongostore.Pinger(db)}

	var revoked ports.RevokedTokenRepository
	switch cfg.RevocationStore {
	case config.RevocationStoreMongo:
		repo := mongostore.NewRevokedTokenRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		revoked = repo
	default:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		revoked = redisstore.NewRevokedTokenRepository(rdb)
		health["redis"] = redisstore.Pinger(rdb)
	}
	log.Info().Str("store", cfg.RevocationStore).Msg("revocation store ready")

	// --- Services ---
	tokens, err := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, TTL: cfg.JWT.Expiry})
	if err != nil {
		return err
	}
	ledger := service.NewRevocationLedger(revoked, log)
	authService := service.NewAuthService(users, service.NewBcryptHasher(cfg.BcryptCost), tokens, ledger, log)
	guard := service.NewGuard(tokens, ledger, service.DefaultPolicy(), log)

	if cfg.Admin.Enabled() {
		if err := authService.SeedAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, "Administrator"); err != nil {
			return err
		}
	}

	janitor := maintenance.NewJanitor(ledger, cfg.PruneInterval, log, func(removed int64) {
		metrics.RevokedTokensPrunedTotal.Add(float64(removed))
	})
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	janitor.Start(janitorCtx)
	defer func() {
		stopJanitor()
		janitor.Wait()
	}()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService: authService,
		Guard:       guard,
		Health:      health,
		Logger:      log,
		LoginRate:   cfg.Limits.LoginRate,
	})

	return serve(ctx, e, ":"+cfg.Port, log)
}

func serve(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	e.Server.ReadHeaderTimeout = 10 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("auth service listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
