//go:generate go run go.uber.org/mock/mockgen -source=shoutbox_service.go -destination=../mocks/mock_shoutbox_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spettacolo/squalo/domain"
	errs "github.com/spettacolo/squalo/errors"
	"github.com/spettacolo/squalo/moderation"
	"github.com/spettacolo/squalo/repositories"
)

var validate = validator.New()

type IShoutboxService interface {
	List(ctx context.Context) ([]domain.Message, error)
	Post(ctx context.Context, text string) (domain.Message, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PostMessageRequest is the validated shape of a new guestbook entry.
type PostMessageRequest struct {
	Text string `validate:"required"`
}

type ShoutboxService struct {
	repository       repositories.IMessageRepository
	moderator        *moderation.Moderator
	log              *slog.Logger
	listLimit        int
	maxContentLength int
}

func NewShoutboxService(
	repository repositories.IMessageRepository,
	moderator *moderation.Moderator,
	log *slog.Logger,
	listLimit, maxContentLength int,
) *ShoutboxService {
	return &ShoutboxService{
		repository:       repository,
		moderator:        moderator,
		log:              log,
		listLimit:        listLimit,
		maxContentLength: maxContentLength,
	}
}

func (s *ShoutboxService) List(ctx context.Context) ([]domain.Message, error) {
	return s.repository.List(ctx, s.listLimit)
}

// Post validates, censors and stores a new message.
// Invalid input never reaches the repository.
func (s *ShoutboxService) Post(ctx context.Context, text string) (domain.Message, error) {
	req := PostMessageRequest{Text: strings.TrimSpace(text)}
	if err := validate.Struct(req); err != nil {
		return domain.Message{}, fmt.Errorf("%w: text is required", errs.ErrInvalidPayload)
	}
	if s.maxContentLength > 0 {
		if err := validate.Var(req.Text, fmt.Sprintf("max=%d", s.maxContentLength)); err != nil {
			return domain.Message{}, fmt.Errorf("%w: text exceeds %d characters", errs.ErrInvalidPayload, s.maxContentLength)
		}
	}

	censored, words := s.moderator.Censor(req.Text)
	if len(words) > 0 {
		s.log.Info("Censored shoutbox message", "words", len(words))
	}
	return s.repository.Append(ctx, censored)
}

func (s *ShoutboxService) Delete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, errs.ErrIDRequired
	}
	return s.repository.Delete(ctx, id)
}
