package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/models/dto"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/export"
	"github.com/familyhub/portal/internal/pkg/helpers"
	"github.com/familyhub/portal/internal/pkg/metrics"
)

// ContributionStats summarise a list of contributions
type ContributionStats struct {
	Total     float64
	ThisMonth float64
	Count     int
}

// ComputeContributionStats sums all amounts and those created in now's calendar month
func ComputeContributionStats(contributions []*models.Contribution, now time.Time) ContributionStats {
	stats := ContributionStats{Count: len(contributions)}
	for _, c := range contributions {
		stats.Total += c.Amount
		if helpers.InSameMonth(c.CreatedAt, now) {
			stats.ThisMonth += c.Amount
		}
	}
	return stats
}

// ContributionService handles the caller's contributions
type ContributionService interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]*models.Contribution, ContributionStats, error)
	Create(ctx context.Context, userID uuid.UUID, form *dto.ContributionForm) (*models.Contribution, error)
	ExportMine(ctx context.Context, userID uuid.UUID, w io.Writer) error
}

type contributionServiceImpl struct {
	contributionRepo repositories.IContributionRepository
	opts             Options
	logger           zerolog.Logger
}

// NewContributionService creates a new ContributionService
func NewContributionService(contributionRepo repositories.IContributionRepository, opts Options, logger zerolog.Logger) ContributionService {
	return &contributionServiceImpl{
		contributionRepo: contributionRepo,
		opts:             opts,
		logger:           logger,
	}
}

// ListMine returns the caller's contributions newest first with their stats
func (s *contributionServiceImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*models.Contribution, ContributionStats, error) {
	contributions, err := s.contributionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, ContributionStats{}, err
	}
	return contributions, ComputeContributionStats(contributions, s.opts.now()), nil
}

// Create inserts one pending contribution
func (s *contributionServiceImpl) Create(ctx context.Context, userID uuid.UUID, form *dto.ContributionForm) (contribution *models.Contribution, err error) {
	defer func() { metrics.RecordForm("contribution", err) }()

	method := models.PaymentMethod(form.PaymentMethod)
	if method == "" {
		method = models.PaymentMpesa
	}

	contribution = &models.Contribution{
		UserID:           userID,
		Amount:           form.Amount,
		ContributionType: models.ContributionType(form.ContributionType),
		PaymentMethod:    method,
		Notes:            optional(form.Notes),
		Status:           models.ContributionPending,
	}
	if err := s.contributionRepo.Create(ctx, contribution); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userID", userID.String()).
		Str("contributionID", contribution.ID.String()).
		Float64("amount", contribution.Amount).
		Msg("Contribution recorded")
	return contribution, nil
}

// ExportMine writes the caller's contributions as a workbook
func (s *contributionServiceImpl) ExportMine(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	contributions, err := s.contributionRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	return export.WriteContributions(w, contributions, s.opts.location())
}
