package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/helpers"
)

// RecentMessagesWindow is how far back the dashboard counts chat messages
const RecentMessagesWindow = 24 * time.Hour

// DashboardData is everything the signed-in landing page shows
type DashboardData struct {
	MyContributions float64
	UpcomingEvents  int
	TotalMembers    int
	RecentMessages  int
	Birthdays       []helpers.UpcomingBirthday[*models.Profile]
}

// DashboardService loads the dashboard
type DashboardService interface {
	Load(ctx context.Context, userID uuid.UUID) DashboardData
}

type dashboardServiceImpl struct {
	profileRepo      repositories.IProfileRepository
	contributionRepo repositories.IContributionRepository
	eventRepo        repositories.IEventRepository
	chatRepo         repositories.IChatRepository
	opts             Options
	logger           zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	profileRepo repositories.IProfileRepository,
	contributionRepo repositories.IContributionRepository,
	eventRepo repositories.IEventRepository,
	chatRepo repositories.IChatRepository,
	opts Options,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		profileRepo:      profileRepo,
		contributionRepo: contributionRepo,
		eventRepo:        eventRepo,
		chatRepo:         chatRepo,
		opts:             opts,
		logger:           logger,
	}
}

// Load runs the dashboard reads in parallel
func (s *dashboardServiceImpl) Load(ctx context.Context, userID uuid.UUID) DashboardData {
	var data DashboardData
	now := s.opts.now()

	batch := newReadBatch(ctx, s.logger.With().Str("userID", userID.String()).Logger())
	batch.Go("my contributions", func(ctx context.Context) error {
		mine, err := s.contributionRepo.ListByUser(ctx, userID)
		data.MyContributions = helpers.SumAmounts(mine, contributionAmount)
		return err
	})
	batch.Go("upcoming events", func(ctx context.Context) (err error) {
		data.UpcomingEvents, err = s.eventRepo.CountFrom(ctx, now)
		return err
	})
	batch.Go("members", func(ctx context.Context) (err error) {
		data.TotalMembers, err = s.profileRepo.Count(ctx)
		return err
	})
	batch.Go("recent messages", func(ctx context.Context) (err error) {
		data.RecentMessages, err = s.chatRepo.CountSince(ctx, now.Add(-RecentMessagesWindow))
		return err
	})
	batch.Go("birthdays", func(ctx context.Context) error {
		profiles, err := s.profileRepo.ListWithBirthday(ctx)
		if err != nil {
			return err
		}
		data.Birthdays = helpers.UpcomingBirthdays(profiles, profileBirthday, now, helpers.BirthdayWindowDays)
		return nil
	})
	batch.Wait()

	return data
}

func profileBirthday(p *models.Profile) (time.Time, bool) {
	if p.Birthday == nil {
		return time.Time{}, false
	}
	return *p.Birthday, true
}
