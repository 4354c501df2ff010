package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/spettacolo/squalo/domain"
)

const (
	badgerMessagePrefix = "msg:"
	badgerIndexPrefix   = "id:"
)

// BadgerMessageRepository stores messages in an embedded BadgerDB.
type BadgerMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	now func() time.Time
}

func NewBadgerMessageRepository(db *badger.DB, log *slog.Logger) *BadgerMessageRepository {
	return &BadgerMessageRepository{db: db, log: log, now: time.Now}
}

// OpenBadgerMessageRepository opens the database at path and owns it.
func OpenBadgerMessageRepository(path string, log *slog.Logger) (*BadgerMessageRepository, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewBadgerMessageRepository(db, log), nil
}

// messageKey is formatted as "msg:{timestamp_padded}:{id}" so that the
// 19-digit zero padding keeps keys in chronological order, and the id
// separates two messages written in the same nanosecond.
func messageKey(m domain.Message) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", badgerMessagePrefix, m.CreatedAt.UnixNano(), m.ID))
}

func indexKey(id string) []byte {
	return []byte(badgerIndexPrefix + id)
}

func (b *BadgerMessageRepository) Append(_ context.Context, text string) (domain.Message, error) {
	message := newMessage(text, b.now())
	bytes, err := json.Marshal(message)
	if err != nil {
		return domain.Message{}, err
	}
	key := messageKey(message)
	err = b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(indexKey(message.ID), key)
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("store message: %w", err)
	}
	return message, nil
}

// List walks the keys backwards from the highest possible timestamp, so
// messages come out newest first and iteration stops at the limit.
func (b *BadgerMessageRepository) List(_ context.Context, limit int) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	if limit <= 0 {
		return messages, nil
	}
	err := b.db.View(func(txn *badger.Txn) error {
		prefix := []byte(badgerMessagePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append([]byte(badgerMessagePrefix), []byte("9999999999999999999;")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(messages) == limit {
				b.log.Debug(fmt.Sprintf("Maximum of %d message reached", limit))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var m domain.Message
				if err := json.Unmarshal(value, &m); err != nil {
					return err
				}
				messages = append(messages, m)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (b *BadgerMessageRepository) Delete(_ context.Context, id string) (bool, error) {
	found := false
	err := b.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		primary, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err = txn.Delete(primary); err != nil {
			return err
		}
		found = true
		return txn.Delete(indexKey(id))
	})
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	return found, nil
}

func (b *BadgerMessageRepository) Close() error {
	return b.db.Close()
}
