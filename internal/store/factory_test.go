package store_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam71101/vinted-scanner/internal/config"
	"github.com/cam71101/vinted-scanner/internal/store"
	"github.com/cam71101/vinted-scanner/pkg/logger"
)

func quietLogger() *slog.Logger {
	return logger.Discard()
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.StoreConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "auto without credentials is disabled",
			cfg:      config.StoreConfig{},
			wantName: "disabled",
		},
		{
			name: "auto with gist credentials selects gist",
			cfg: config.StoreConfig{
				Gist: config.GistConfig{Token: "t", ID: "g"},
			},
			wantName: "gist",
		},
		{
			name: "gist with token only is disabled",
			cfg: config.StoreConfig{
				Backend: config.BackendGist,
				Gist:    config.GistConfig{Token: "t"},
			},
			wantName: "disabled",
		},
		{
			name:     "postgres without dsn is disabled",
			cfg:      config.StoreConfig{Backend: config.BackendPostgres},
			wantName: "disabled",
		},
		{
			name: "postgres with dsn",
			cfg: config.StoreConfig{
				Backend:  config.BackendPostgres,
				Key:      "k",
				Postgres: config.PostgresConfig{DSN: "postgres://u:p@localhost:5432/db?sslmode=disable"},
			},
			wantName: "postgres",
		},
		{
			name: "postgres with malformed dsn",
			cfg: config.StoreConfig{
				Backend:  config.BackendPostgres,
				Postgres: config.PostgresConfig{DSN: "postgres://%zz"},
			},
			wantErr: true,
		},
		{
			name: "redis with url",
			cfg: config.StoreConfig{
				Backend: config.BackendRedis,
				Key:     "k",
				Redis:   config.RedisConfig{URL: "redis://localhost:6379/0"},
			},
			wantName: "redis",
		},
		{
			name: "redis with bad scheme",
			cfg: config.StoreConfig{
				Backend: config.BackendRedis,
				Redis:   config.RedisConfig{URL: "http://localhost"},
			},
			wantErr: true,
		},
		{
			name:     "mongo without uri is disabled",
			cfg:      config.StoreConfig{Backend: config.BackendMongo},
			wantName: "disabled",
		},
		{
			name: "mongo with malformed uri",
			cfg: config.StoreConfig{
				Backend: config.BackendMongo,
				Mongo:   config.MongoConfig{URI: "mongodb://%zz"},
			},
			wantErr: true,
		},
		{
			name:     "none",
			cfg:      config.StoreConfig{Backend: config.BackendNone},
			wantName: "disabled",
		},
		{
			name:    "unknown backend",
			cfg:     config.StoreConfig{Backend: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := store.New(context.Background(), &tt.cfg, quietLogger())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, s == nil, "failed backends return an untyped nil store")
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	cfg := config.StoreConfig{
		Backend: config.BackendFile,
		File:    config.FileConfig{Path: filepath.Join(t.TempDir(), "seen.json")},
	}
	s, err := store.New(context.Background(), &cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "file", s.Name())
}
