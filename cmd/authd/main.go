// Command authd is the composition root: it loads configuration, wires
// every internal package together behind interface boundaries, and serves
// the HTTP surface described in spec.md §6 until told to shut down.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juan-009/authguard/core/config"
	"github.com/juan-009/authguard/core/event"
	coreserver "github.com/juan-009/authguard/core/server"
	"github.com/juan-009/authguard/integration/database/pg"
	"github.com/juan-009/authguard/integration/database/redis"
	"github.com/juan-009/authguard/internal/admincoordinator"
	"github.com/juan-009/authguard/internal/audit"
	"github.com/juan-009/authguard/internal/authcoordinator"
	"github.com/juan-009/authguard/internal/httpapi"
	"github.com/juan-009/authguard/internal/keyring"
	"github.com/juan-009/authguard/internal/mfa"
	"github.com/juan-009/authguard/internal/passwordvault"
	"github.com/juan-009/authguard/internal/permcache"
	"github.com/juan-009/authguard/internal/postgres"
	"github.com/juan-009/authguard/internal/rbac"
	"github.com/juan-009/authguard/internal/tokenservice"
	"github.com/juan-009/authguard/internal/unitofwork"
	"github.com/juan-009/authguard/pkg/ratelimiter"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("authd exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad[appConfig]()
	logger.Info("authd starting", slog.String("environment", cfg.Environment))

	pgCfg := config.MustLoad[pg.Config]()
	redisCfg := config.MustLoad[redis.Config]()
	keyCfg := config.MustLoad[keyring.Config]()
	tokenCfg := config.MustLoad[tokenservice.Config]()
	vaultCfg := config.MustLoad[passwordvault.Config]()
	mfaCfg := config.MustLoad[mfa.Config]()
	authCfg := config.MustLoad[authcoordinator.Config]()
	cacheCfg := config.MustLoad[permcache.Config]()

	mfaKey, err := hex.DecodeString(cfg.MFASecretKey)
	if err != nil || len(mfaKey) != 32 {
		return fmt.Errorf("MFA_SECRET_KEY must be a 64-character hex string: %w", err)
	}

	pool, err := pg.Connect(ctx, *pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, *pgCfg, logger); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}

	redisClient, err := redis.Connect(ctx, *redisCfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories: the only packages that import pgx directly.
	users := postgres.NewUserRepository(pool)
	roles := postgres.NewRoleRepository(pool)
	permissions := postgres.NewPermissionRepository(pool)
	sessions := postgres.NewSessionRepository(pool)

	uow := unitofwork.New(pool)

	ring, err := keyring.Bootstrap(*keyCfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap signing keyring: %w", err)
	}
	go ring.RunRotationLoop(ctx, time.Hour)

	denylist := tokenservice.NewRedisDenylist(redisClient)
	refreshRegistry := tokenservice.NewRedisRefreshRegistry(redisClient)
	tokens := tokenservice.New(ring, *tokenCfg, denylist, refreshRegistry)

	vault := passwordvault.New(*vaultCfg)

	mfaAttempts := mfa.NewRedisAttemptStore(redisClient)
	mfaEngine := mfa.New(*mfaCfg, mfaAttempts, vault)
	secretCipher := authcoordinator.NewSecretCipher(mfaKey)

	permCache := permcache.New(*cacheCfg, redisClient)
	defer permCache.Close()

	auditSink := audit.New(cfg.AuditBufferSize, logger)
	go auditSink.Run(ctx, func(e event.Event) {
		logger.InfoContext(ctx, "audit event", slog.String("name", e.Name), slog.Any("payload", e.Payload))
	})

	roleGraph := rbac.NewRepositoryGraph(roles, permissions)
	evaluator := rbac.New(roleGraph, permCache, auditSink)

	authCoordinator, err := authcoordinator.New(*authCfg, users, roles, sessions, uow, tokens, vault, mfaEngine, secretCipher)
	if err != nil {
		return fmt.Errorf("build auth coordinator: %w", err)
	}

	adminCoordinator := admincoordinator.New(evaluator, users, roles, permissions, permCache, vault, uow)

	loginRateStore := ratelimiter.NewMemoryStore()
	loginLimiter, err := ratelimiter.NewBucket(loginRateStore, ratelimiter.Config{
		Capacity:       cfg.LoginRateCapacity,
		RefillRate:     cfg.LoginRateRefill,
		RefillInterval: cfg.LoginRateInterval,
	})
	if err != nil {
		return fmt.Errorf("configure login rate limiter: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:       logger,
		Auth:         authCoordinator,
		Admin:        adminCoordinator,
		Tokens:       tokens,
		Keyring:      ring,
		MFACipher:    secretCipher,
		Users:        users,
		Roles:        roles,
		Permissions:  permissions,
		LoginLimiter: loginLimiter,
		CORSOrigins:  cfg.CORSOrigins,
		Readiness: []func(context.Context) error{
			pg.Healthcheck(pool),
			redis.Healthcheck(redisClient),
		},
	})

	srv := coreserver.New(cfg.HTTPAddr, coreserver.WithLogger(logger))
	logger.Info("authd listening", slog.String("addr", cfg.HTTPAddr))
	return srv.Start(ctx, router)
}
