package repositories

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spettacolo/squalo/domain"
	errs "github.com/spettacolo/squalo/errors"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// SSL modes understood by PostgresOptions.SSLMode.
const (
	SSLModeDisable    = "disable"
	SSLModeRequire    = "require"
	SSLModeVerifyCA   = "verify-ca"
	SSLModeVerifyFull = "verify-full"
)

// Hosted providers hand out URLs that require TLS but whose certificates
// are not in the system pool.
var insecureTLSHint = regexp.MustCompile(`(?i)sslmode=require|sslmode=verify-ca|ssl=true|supabase`)

type PostgresOptions struct {
	ConnString string
	SSLMode    string
	SSLDisable bool
}

// PostgresMessageRepository stores messages in a single "messages" table.
// The pool is created on first use and shared by every request.
type PostgresMessageRepository struct {
	opts PostgresOptions
	log  *slog.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewPostgresMessageRepository(opts PostgresOptions, log *slog.Logger) *PostgresMessageRepository {
	return &PostgresMessageRepository{opts: opts, log: log}
}

func (p *PostgresMessageRepository) List(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		return []domain.Message{}, nil
	}
	pool, err := p.getPool(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT id, text, created_at FROM messages ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, mapPgError(err)
	}
	messages, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, mapPgError(err)
	}
	return messages, nil
}

func (p *PostgresMessageRepository) Append(ctx context.Context, text string) (domain.Message, error) {
	pool, err := p.getPool(ctx)
	if err != nil {
		return domain.Message{}, err
	}
	candidate := newMessage(text, timeNow())
	rows, err := pool.Query(ctx,
		`INSERT INTO messages (id, text, created_at) VALUES ($1, $2, now()) RETURNING id, text, created_at`,
		candidate.ID, candidate.Text)
	if err != nil {
		return domain.Message{}, mapPgError(err)
	}
	message, err := pgx.CollectExactlyOneRow(rows, scanMessage)
	if err != nil {
		return domain.Message{}, mapPgError(err)
	}
	return message, nil
}

func (p *PostgresMessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	pool, err := p.getPool(ctx)
	if err != nil {
		return false, err
	}
	tag, err := pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return false, mapPgError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresMessageRepository) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// getPool lazily builds the shared pool. A failed attempt is not cached,
// the next call tries again.
func (p *PostgresMessageRepository) getPool(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		return p.pool, nil
	}
	if strings.TrimSpace(p.opts.ConnString) == "" {
		return nil, errs.ErrStoreNotConfigured
	}

	config, err := pgxpool.ParseConfig(p.opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	ApplyTLS(config.ConnConfig, p.opts)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if _, err = pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure messages table: %w", mapPgError(err))
	}
	p.log.Info("Postgres pool ready", "host", config.ConnConfig.Host, "database", config.ConnConfig.Database)
	p.pool = pool
	return pool, nil
}

// ApplyTLS sets the TLS behaviour of the connection from the explicit flags,
// falling back to URL heuristics when no mode is configured.
func ApplyTLS(cfg *pgx.ConnConfig, opts PostgresOptions) {
	mode := strings.ToLower(strings.TrimSpace(opts.SSLMode))
	if opts.SSLDisable {
		mode = SSLModeDisable
	}

	switch mode {
	case SSLModeDisable:
		cfg.TLSConfig = nil
		cfg.Fallbacks = nil
	case SSLModeRequire:
		cfg.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		cfg.Fallbacks = nil
	case SSLModeVerifyCA, SSLModeVerifyFull:
		cfg.TLSConfig = &tls.Config{ServerName: cfg.Host}
		cfg.Fallbacks = nil
	default:
		if insecureTLSHint.MatchString(opts.ConnString) {
			cfg.TLSConfig = &tls.Config{InsecureSkipVerify: true}
			cfg.Fallbacks = nil
		}
	}
}

func scanMessage(row pgx.CollectableRow) (domain.Message, error) {
	var m domain.Message
	if err := row.Scan(&m.ID, &m.Text, &m.CreatedAt); err != nil {
		return domain.Message{}, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", errs.ErrSchemaMissing, pgErr.Message)
	}
	return err
}
