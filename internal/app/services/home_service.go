package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/helpers"
)

// HomeStats are the public figures on the landing page
type HomeStats struct {
	TotalMembers       int
	TotalContributions float64
	UpcomingEvents     int
	TotalPhotos        int
}

// HomeService loads the landing page
type HomeService interface {
	Stats(ctx context.Context) HomeStats
}

type homeServiceImpl struct {
	profileRepo      repositories.IProfileRepository
	contributionRepo repositories.IContributionRepository
	eventRepo        repositories.IEventRepository
	galleryRepo      repositories.IGalleryRepository
	opts             Options
	logger           zerolog.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(
	profileRepo repositories.IProfileRepository,
	contributionRepo repositories.IContributionRepository,
	eventRepo repositories.IEventRepository,
	galleryRepo repositories.IGalleryRepository,
	opts Options,
	logger zerolog.Logger,
) HomeService {
	return &homeServiceImpl{
		profileRepo:      profileRepo,
		contributionRepo: contributionRepo,
		eventRepo:        eventRepo,
		galleryRepo:      galleryRepo,
		opts:             opts,
		logger:           logger,
	}
}

// Stats loads the four figures in parallel; events on or after now count as upcoming
func (s *homeServiceImpl) Stats(ctx context.Context) HomeStats {
	var stats HomeStats
	now := s.opts.now()

	batch := newReadBatch(ctx, s.logger)
	batch.Go("members", func(ctx context.Context) (err error) {
		stats.TotalMembers, err = s.profileRepo.Count(ctx)
		return err
	})
	batch.Go("contributions", func(ctx context.Context) error {
		all, err := s.contributionRepo.ListAll(ctx)
		stats.TotalContributions = helpers.SumAmounts(all, contributionAmount)
		return err
	})
	batch.Go("upcoming events", func(ctx context.Context) (err error) {
		stats.UpcomingEvents, err = s.eventRepo.CountFrom(ctx, now)
		return err
	})
	batch.Go("photos", func(ctx context.Context) (err error) {
		stats.TotalPhotos, err = s.galleryRepo.CountPhotos(ctx)
		return err
	})
	batch.Wait()

	return stats
}

func contributionAmount(c *models.Contribution) float64 { return c.Amount }
