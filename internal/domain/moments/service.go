package moments

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/care-moments/internal/domain/interaction"
	apperrors "github.com/yanqian/care-moments/pkg/errors"
	"github.com/yanqian/care-moments/pkg/metrics"
	"github.com/yanqian/care-moments/pkg/util"
)

// Service exposes beautiful-moment predictions.
type Service interface {
	// Predict ranks the records. timezone overrides the configured zone when not blank.
	Predict(ctx context.Context, records []interaction.Record, timezone string) (Result, error)
}

type service struct {
	cfg      Config
	location *time.Location
	logger   *slog.Logger
}

// NewService wires the predictor. An unknown configured zone falls back to UTC.
func NewService(cfg Config, logger *slog.Logger) Service {
	log := logger.With("component", "moments.service")
	loc, err := util.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("unknown analytics timezone, using UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}
	return &service{cfg: cfg, location: loc, logger: log}
}

func (s *service) Predict(_ context.Context, records []interaction.Record, timezone string) (Result, error) {
	start := time.Now()
	loc := s.location
	if strings.TrimSpace(timezone) != "" {
		resolved, err := util.LoadLocation(timezone)
		if err != nil {
			return Result{}, apperrors.Wrap(apperrors.CodeInvalidInput, "timezone must be a valid IANA zone name", err)
		}
		loc = resolved
	}

	res := Predict(records, loc)

	outcome := metrics.OutcomeSuccess
	if len(records) < MinRecords {
		outcome = metrics.OutcomeInsufficient
	}
	metrics.ObserveAnalysis(metrics.KindMoments, time.Since(start), outcome)
	s.logger.Info("moment prediction completed",
		"records", len(records),
		"patterns", len(res.Predictions),
		"best_activities", len(res.BestActivities),
		"timezone", loc.String(),
	)
	return res, nil
}
