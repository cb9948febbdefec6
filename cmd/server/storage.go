package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/mongo"
	"github.com/dmitrymomot/authkit/pkg/pg"
	"github.com/dmitrymomot/authkit/svc/account"
)

type storage struct {
	driver   string
	repo     account.Repository
	checks   map[string]httpserver.CheckFunc
	shutdown func()
}

func openStorage(ctx context.Context, driver string, log *slog.Logger) (*storage, error) {
	switch driver {
	case "", "memory":
		log.Warn("using in-memory storage; accounts are lost on restart")
		return &storage{
			driver:   "memory",
			repo:     account.NewMemoryRepository(),
			checks:   map[string]httpserver.CheckFunc{},
			shutdown: func() {},
		}, nil

	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, account.Migrations, account.MigrationsDir, cfg, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			driver:   driver,
			repo:     account.NewPostgresRepository(pool),
			checks:   map[string]httpserver.CheckFunc{"postgres": pg.Healthcheck(pool)},
			shutdown: pool.Close,
		}, nil

	case "mongo":
		var cfg mongo.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := mongo.NewWithDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		client := db.Client()
		repo := account.NewMongoRepository(db, account.DefaultMongoCollection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &storage{
			driver:   driver,
			repo:     repo,
			checks:   map[string]httpserver.CheckFunc{"mongo": mongo.Healthcheck(client)},
			shutdown: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("mongo disconnect failed", logger.Error(err))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want memory, postgres or mongo)", driver)
	}
}
