package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ougirez/carbon4c/internal/api/controller"
	"github.com/ougirez/carbon4c/internal/pkg/cache"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
	"github.com/ougirez/carbon4c/internal/service/auth"
	"github.com/ougirez/carbon4c/internal/service/etl"
	"github.com/ougirez/carbon4c/internal/service/export"
	"github.com/ougirez/carbon4c/internal/service/footprint"
	"github.com/ougirez/carbon4c/internal/service/policy"
	"github.com/redis/go-redis/v9"
)

// application wires the services every command draws from.
type application struct {
	pool  *pgxpool.Pool
	redis *redis.Client
	store store.Store

	footprint *footprint.Service
	etl       *etl.Service
	policies  *policy.Service
	export    *export.Service
	auth      *auth.Service
}

func newApplication(ctx context.Context) (*application, error) {
	pool, err := xpgx.NewPool(ctx, xpgx.Config{DSN: cfg.Postgres.DSN, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return nil, fmt.Errorf("xpgx.NewPool: %w", err)
	}

	app := &application{pool: pool, store: store.NewStore(pool)}

	schemas := cache.NewMemory()
	if cfg.Redis.URL != "" {
		schemas, app.redis, err = cache.NewRedis(cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Warnf(ctx, "redis unavailable, schema cache degraded: %s", err.Error())
		}
	}

	app.footprint = footprint.NewFootprintService(app.store, schemas, footprint.OptionsFromConfig(cfg.GCCA))
	app.etl = etl.NewETLService(app.store, cfg.ETL.Table, cfg.ETL.Concurrency)
	app.policies = policy.NewPolicyService(app.store)
	app.export = export.NewExportService(app.footprint, cfg.GCCA.FootprintIndicator)
	app.auth = auth.NewService(cfg.Auth.Secret)

	return app, nil
}

func (a *application) deps() controller.Deps {
	return controller.Deps{
		Footprint: a.footprint,
		ETL:       a.etl,
		Policies:  a.policies,
		Export:    a.export,
		Auth:      a.auth,
		Sources:   cfg.ETL.Sources,
	}
}

func (a *application) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.pool.Close()
}
