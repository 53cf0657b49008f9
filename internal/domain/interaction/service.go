package interaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/care-moments/pkg/errors"
	"github.com/yanqian/care-moments/pkg/util"
)

// Config drives history lookups.
type Config struct {
	HistoryDays int
}

// Service exposes recipient history to the analytics callers.
type Service interface {
	History(ctx context.Context, viewerID, recipientID string) ([]Record, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the history service.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "interaction.service"),
		now:    util.NowUTC,
	}
}

func (s *service) History(ctx context.Context, viewerID, recipientID string) ([]Record, error) {
	viewer := strings.TrimSpace(viewerID)
	if viewer == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "viewer id cannot be empty", nil)
	}
	id, err := uuid.Parse(strings.TrimSpace(recipientID))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "recipient id must be a uuid", err)
	}

	days := s.cfg.HistoryDays
	if days <= 0 {
		days = 90
	}
	q := Query{
		ViewerID:    viewer,
		RecipientID: id.String(),
		Since:       s.now().AddDate(0, 0, -days),
	}
	records, visible, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load interactions", err)
	}
	if !visible {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "care recipient not found", nil)
	}
	s.logger.Debug("interaction history loaded", "recipient_id", q.RecipientID, "records", len(records), "since", q.Since)
	return records, nil
}
