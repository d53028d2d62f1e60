package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cam71101/vinted-scanner/internal/config"
)

// New builds the configured backend. An unset backend means gist when gist
// credentials are present. A backend whose credentials are missing degrades to
// DisabledStore with an info log; absent configuration is not an error.
func New(ctx context.Context, cfg *config.StoreConfig, log *slog.Logger) (SeenStore, error) {
	backend := cfg.Backend
	if backend == config.BackendAuto {
		backend = config.BackendGist
	}

	disabled := func(reason string) (SeenStore, error) {
		log.Info("seen-set persistence disabled", "backend", backend, "reason", reason)
		return NewDisabledStore(), nil
	}

	switch backend {
	case config.BackendGist:
		if cfg.Gist.Token == "" || cfg.Gist.ID == "" {
			return disabled("GITHUB_TOKEN or GIST_ID not set")
		}
		return NewGistStore(cfg.Gist.Token, cfg.Gist.ID,
			WithGistAPIURL(cfg.Gist.APIURL),
			WithGistFilename(cfg.Gist.Filename),
		), nil

	case config.BackendPostgres:
		if cfg.Postgres.DSN == "" {
			return disabled("DATABASE_URL not set")
		}
		s, err := NewPostgresStore(ctx, cfg.Postgres.DSN, cfg.Key)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendRedis:
		if cfg.Redis.URL == "" {
			return disabled("REDIS_URL not set")
		}
		s, err := NewRedisStore(cfg.Redis.URL, cfg.Key)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendMongo:
		if cfg.Mongo.URI == "" {
			return disabled("MONGO_URI not set")
		}
		s, err := NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, cfg.Key)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendFile:
		if cfg.File.Path == "" {
			return disabled("file path not set")
		}
		return NewFileStore(cfg.File.Path), nil

	case config.BackendNone:
		return disabled("backend set to none")

	default:
		return nil, fmt.Errorf("unknown seen-set backend %q", cfg.Backend)
	}
}
