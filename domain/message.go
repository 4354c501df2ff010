// Package domain contains core concepts of the site.
// This file defines guestbook messages.
// Messages are immutable once stored: there is no update operation.
package domain

import (
	"sort"
	"time"
)

// Message is a single guestbook entry.
type Message struct {
	ID        string    `json:"id"` // opaque, unique
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// SortNewestFirst orders messages by creation time descending.
// Equal timestamps keep their storage order.
func SortNewestFirst(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}

// Truncate returns at most limit messages. A non-positive limit yields an empty slice.
func Truncate(messages []Message, limit int) []Message {
	if limit <= 0 {
		return []Message{}
	}
	if len(messages) > limit {
		return messages[:limit]
	}
	return messages
}
