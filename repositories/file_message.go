package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/spettacolo/squalo/domain"
)

const fileStoreName = "shoutbox.json"

// FileMessageRepository keeps every message in a single JSON array on disk.
// Operations are serialized and the file is replaced atomically on write.
type FileMessageRepository struct {
	path string
	log  *slog.Logger
	now  func() time.Time
	mu   sync.Mutex
}

func NewFileMessageRepository(dir string, log *slog.Logger) *FileMessageRepository {
	return &FileMessageRepository{
		path: filepath.Join(dir, fileStoreName),
		log:  log,
		now:  time.Now,
	}
}

func (f *FileMessageRepository) Path() string {
	return f.path
}

func (f *FileMessageRepository) List(_ context.Context, limit int) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(all)
	return domain.Truncate(all, limit), nil
}

func (f *FileMessageRepository) Append(_ context.Context, text string) (domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return domain.Message{}, err
	}
	message := newMessage(text, f.now())
	if err = f.write(append(all, message)); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

func (f *FileMessageRepository) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return false, err
	}
	kept := lo.Reject(all, func(m domain.Message, _ int) bool { return m.ID == id })
	if len(kept) == len(all) {
		return false, nil
	}
	if err = f.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (f *FileMessageRepository) Close() error {
	return nil
}

// ensure creates the data directory and an empty array file on first access.
func (f *FileMessageRepository) ensure() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return f.write([]domain.Message{})
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}
	return nil
}

func (f *FileMessageRepository) read() ([]domain.Message, error) {
	if err := f.ensure(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	var messages []domain.Message
	if err = json.Unmarshal(raw, &messages); err != nil {
		// A corrupted file reads as empty, the next write replaces it.
		f.log.Warn("Unreadable shoutbox file, treating as empty", "path", f.path, "error", err)
		return []domain.Message{}, nil
	}
	return messages, nil
}

func (f *FileMessageRepository) write(messages []domain.Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), fileStoreName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
