package repositories

import (
	"fmt"
	"log/slog"
	"strings"

	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/internal"
)

// Backend names accepted by SHOUTBOX_BACKEND.
const (
	BackendAuto     = "auto"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
)

// ResolveBackend maps the configured backend to a concrete one.
// "auto" picks Postgres when a connection string is configured, the JSON file otherwise.
func ResolveBackend(config internal.Config) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(config.ShoutboxBackend))
	switch backend {
	case "", BackendAuto:
		if config.Postgres.ConnectionString() != "" {
			return BackendPostgres, nil
		}
		return BackendFile, nil
	case BackendFile, BackendPostgres, BackendSQLite, BackendBadger:
		return backend, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownBackend, config.ShoutboxBackend)
	}
}

// NewMessageRepository builds the store once at startup. Every caller then
// shares the returned instance.
func NewMessageRepository(config internal.Config, log *slog.Logger) (IMessageRepository, string, error) {
	backend, err := ResolveBackend(config)
	if err != nil {
		return nil, "", err
	}
	log = log.With("backend", backend)

	switch backend {
	case BackendPostgres:
		return NewPostgresMessageRepository(PostgresOptions{
			ConnString: config.Postgres.ConnectionString(),
			SSLMode:    config.Postgres.SSLMode,
			SSLDisable: config.Postgres.SSLDisable,
		}, log), backend, nil
	case BackendSQLite:
		repo, err := OpenSQLiteMessageRepository(config.SQLitePath, log)
		if err != nil {
			return nil, "", err
		}
		return repo, backend, nil
	case BackendBadger:
		repo, err := OpenBadgerMessageRepository(config.BadgerFilepath, log)
		if err != nil {
			return nil, "", err
		}
		return repo, backend, nil
	default:
		return NewFileMessageRepository(config.DataDir, log), backend, nil
	}
}
