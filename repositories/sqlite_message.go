package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spettacolo/squalo/domain"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS messages_created_at ON messages (created_at)`

// SQLiteMessageRepository is the embedded relational backend.
// created_at is stored as unix nanoseconds in UTC.
type SQLiteMessageRepository struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

// OpenSQLiteMessageRepository opens (or creates) the database file and its schema.
func OpenSQLiteMessageRepository(path string, log *slog.Logger) (*SQLiteMessageRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure messages table: %w", err)
	}
	return &SQLiteMessageRepository{db: db, log: log, now: time.Now}, nil
}

func (s *SQLiteMessageRepository) List(ctx context.Context, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		return []domain.Message{}, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, created_at FROM messages ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	messages := make([]domain.Message, 0, limit)
	for rows.Next() {
		var (
			m       domain.Message
			created int64
		)
		if err = rows.Scan(&m.ID, &m.Text, &created); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (s *SQLiteMessageRepository) Append(ctx context.Context, text string) (domain.Message, error) {
	message := newMessage(text, s.now())
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, text, created_at) VALUES (?, ?, ?)`,
		message.ID, message.Text, message.CreatedAt.UnixNano())
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

func (s *SQLiteMessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteMessageRepository) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
