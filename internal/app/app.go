// Package app wires storage, repositories and domain services from config.
// Both the API server and adminctl start here.
package app

import (
	"context"
	"fmt"

	"adminsuite/internal/config"
	"adminsuite/internal/domain/analytics"
	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/inventory"
	"adminsuite/internal/domain/reports"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/storage/postgres"
	"adminsuite/internal/infrastructure/storage/postgres/metrics_repo"
	"adminsuite/internal/infrastructure/storage/postgres/user_repo"
	"adminsuite/pkg/logger"
)

// App holds the wired services.
type App struct {
	Pool        *postgres.Pool
	TxManager   *postgres.TxManager
	AuditLog    *postgres.AuditLog
	Idempotency *postgres.IdempotencyStore

	JWT       *auth.JWTService
	Auth      *auth.Service
	Users     *users.Service
	Analytics *analytics.Service
	Inventory *inventory.Service
	Reports   *reports.Service
}

// Open connects to the database and builds every service. The caller owns
// Close. With Database.AutoMigrate set the schema is applied first.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.MaxConns = cfg.Database.MaxConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	txManager := postgres.NewTxManager(pool).WithReadOnlyTimeout(cfg.Database.StatementTimeout)
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, txManager); err != nil {
			pool.Close()
			return nil, err
		}
	}

	auditLog, err := postgres.NewAuditLog(txManager)
	if err != nil {
		pool.Close()
		return nil, err
	}

	userRepo := user_repo.NewUserRepo(txManager)
	salesRepo := metrics_repo.NewSalesRepo(txManager)
	inventoryRepo := metrics_repo.NewInventoryRepo(txManager)

	jwtCfg := auth.DefaultJWTConfig(cfg.JWT.Secret)
	if cfg.JWT.TTL > 0 {
		jwtCfg.AccessTokenTTL = cfg.JWT.TTL
	}
	jwtService := auth.NewJWTService(jwtCfg)

	usersService := users.NewService(userRepo, txManager).
		WithPasswordHasher(auth.HashPassword).
		WithAuditLog(auditLog)

	a := &App{
		Pool:        pool,
		TxManager:   txManager,
		AuditLog:    auditLog,
		Idempotency: postgres.NewIdempotencyStore(txManager, cfg.HTTP.IdempotencyTTL),
		JWT:         jwtService,
		Auth:        auth.NewService(userRepo, jwtService).WithRegistrar(usersService),
		Users:       usersService,
		Analytics:   analytics.NewService(userRepo, salesRepo, inventoryRepo, txManager),
		Inventory:   inventory.NewService(inventoryRepo, txManager),
		Reports: reports.NewService(userRepo, salesRepo, inventoryRepo, txManager, reports.Config{
			TimeLayout: cfg.Export.TimeLayout,
			Location:   loc,
		}),
	}

	logger.Info(ctx, "services ready",
		"auto_migrate", cfg.Database.AutoMigrate,
		"export_timezone", loc.String())

	return a, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}
