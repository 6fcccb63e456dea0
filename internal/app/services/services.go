package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/familyhub/portal/internal/app/repositories"
	"github.com/familyhub/portal/internal/pkg/auth"
	"github.com/familyhub/portal/internal/pkg/filestorage"
)

// Services defined in this package:
// - AuthService: sign-up, login and session verification
// - ProfileService: the caller's viewer, member directory and profile edits
// - HomeService, DashboardService, ReportService: parallel stat loads
// - ContributionService, EventService, GalleryService, BlogService, ChatService: page lists and forms

// Clock returns the current time
type Clock func() time.Time

// Options carries the settings shared by the services
type Options struct {
	// Location decides calendar days and months
	Location *time.Location

	// MaxUploadBytes caps image uploads
	MaxUploadBytes int64

	// Now defaults to time.Now
	Now Clock
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().In(o.location())
	}
	return time.Now().In(o.location())
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Services holds all page services
type Services struct {
	Auth         AuthService
	Profile      ProfileService
	Home         HomeService
	Dashboard    DashboardService
	Contribution ContributionService
	Event        EventService
	Gallery      GalleryService
	Blog         BlogService
	Chat         ChatService
	Report       ReportService
}

// NewServices wires every service to the repositories and storage
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, storage filestorage.Bucket, opts Options, logger zerolog.Logger) *Services {
	return &Services{
		Auth:         NewAuthService(repos.UserRepository, jwtService, logger),
		Profile:      NewProfileService(repos.ProfileRepository, repos.UserRepository, storage, opts, logger),
		Home:         NewHomeService(repos.ProfileRepository, repos.ContributionRepository, repos.EventRepository, repos.GalleryRepository, opts, logger),
		Dashboard:    NewDashboardService(repos.ProfileRepository, repos.ContributionRepository, repos.EventRepository, repos.ChatRepository, opts, logger),
		Contribution: NewContributionService(repos.ContributionRepository, opts, logger),
		Event:        NewEventService(repos.EventRepository, opts, logger),
		Gallery:      NewGalleryService(repos.GalleryRepository, storage, opts, logger),
		Blog:         NewBlogService(repos.BlogRepository, logger),
		Chat:         NewChatService(repos.ChatRepository, logger),
		Report:       NewReportService(repos.ContributionRepository, repos.ProfileRepository, repos.EventRepository, repos.BlogRepository, opts, logger),
	}
}

// readBatch runs independent reads in parallel. A failed read is logged and
// leaves its target at the zero value; the batch itself never fails.
type readBatch struct {
	g      *errgroup.Group
	ctx    context.Context
	logger zerolog.Logger
}

func newReadBatch(ctx context.Context, logger zerolog.Logger) *readBatch {
	g, gctx := errgroup.WithContext(ctx)
	return &readBatch{g: g, ctx: gctx, logger: logger}
}

func (b *readBatch) Go(name string, read func(ctx context.Context) error) {
	b.g.Go(func() error {
		if err := read(b.ctx); err != nil {
			b.logger.Warn().Err(err).Str("read", name).Msg("Read failed, showing empty value")
		}
		return nil
	})
}

func (b *readBatch) Wait() {
	_ = b.g.Wait()
}
