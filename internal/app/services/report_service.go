package services

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/export"
	"github.com/familyhub/portal/internal/pkg/helpers"
)

// ReportStats are the family-wide aggregates
type ReportStats struct {
	TotalContributions   float64
	MonthlyContributions float64
	TotalMembers         int
	TotalEvents          int
	UpcomingEvents       int
	BlogPosts            int
	GeneratedAt          time.Time
}

// ReportService computes the reports page
type ReportService interface {
	Load(ctx context.Context) ReportStats
	Export(ctx context.Context, w io.Writer) error
}

type reportServiceImpl struct {
	contributionRepo repositories.IContributionRepository
	profileRepo      repositories.IProfileRepository
	eventRepo        repositories.IEventRepository
	blogRepo         repositories.IBlogRepository
	opts             Options
	logger           zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	contributionRepo repositories.IContributionRepository,
	profileRepo repositories.IProfileRepository,
	eventRepo repositories.IEventRepository,
	blogRepo repositories.IBlogRepository,
	opts Options,
	logger zerolog.Logger,
) ReportService {
	return &reportServiceImpl{
		contributionRepo: contributionRepo,
		profileRepo:      profileRepo,
		eventRepo:        eventRepo,
		blogRepo:         blogRepo,
		opts:             opts,
		logger:           logger,
	}
}

// Load runs the report reads in parallel. Only events strictly after now count as upcoming.
func (s *reportServiceImpl) Load(ctx context.Context) ReportStats {
	now := s.opts.now()
	stats := ReportStats{GeneratedAt: now}

	batch := newReadBatch(ctx, s.logger)
	batch.Go("contributions", func(ctx context.Context) error {
		all, err := s.contributionRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		totals := ComputeContributionStats(all, now)
		stats.TotalContributions = totals.Total
		stats.MonthlyContributions = totals.ThisMonth
		return nil
	})
	batch.Go("members", func(ctx context.Context) (err error) {
		stats.TotalMembers, err = s.profileRepo.Count(ctx)
		return err
	})
	batch.Go("events", func(ctx context.Context) error {
		dates, err := s.eventRepo.ListDates(ctx)
		if err != nil {
			return err
		}
		stats.TotalEvents = len(dates)
		for _, d := range dates {
			if d.After(now) {
				stats.UpcomingEvents++
			}
		}
		return nil
	})
	batch.Go("blog posts", func(ctx context.Context) (err error) {
		stats.BlogPosts, err = s.blogRepo.Count(ctx)
		return err
	})
	batch.Wait()

	return stats
}

// Export writes the report figures as a workbook
func (s *reportServiceImpl) Export(ctx context.Context, w io.Writer) error {
	stats := s.Load(ctx)
	title := "Family report " + stats.GeneratedAt.Format("January 2, 2006 15:04")

	return export.WriteSummary(w, title, []export.SummaryRow{
		{Label: "Total contributions", Value: helpers.FormatKES(stats.TotalContributions)},
		{Label: "This month", Value: helpers.FormatKES(stats.MonthlyContributions)},
		{Label: "Family members", Value: stats.TotalMembers},
		{Label: "Total events", Value: stats.TotalEvents},
		{Label: "Upcoming events", Value: stats.UpcomingEvents},
		{Label: "Blog posts", Value: stats.BlogPosts},
	})
}
