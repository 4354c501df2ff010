//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spettacolo/squalo/domain"
)

// DefaultExportLimit caps how many messages ExportJSON dumps.
const DefaultExportLimit = 10000

var timeNow = time.Now

// IMessageRepository is the guestbook message store.
// Callers only depend on these operations, never on the active backend.
type IMessageRepository interface {
	// List returns up to limit messages, newest first.
	List(ctx context.Context, limit int) ([]domain.Message, error)
	// Append stores text under a new id and the current time.
	Append(ctx context.Context, text string) (domain.Message, error)
	// Delete removes the message with the given id and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}

func newMessage(text string, now time.Time) domain.Message {
	return domain.Message{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now.UTC(),
	}
}

// ExportJSON dumps up to limit messages into path as an indented JSON array.
func ExportJSON(ctx context.Context, repo IMessageRepository, path string, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultExportLimit
	}
	messages, err := repo.List(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list messages: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return 0, err
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return len(messages), nil
}
