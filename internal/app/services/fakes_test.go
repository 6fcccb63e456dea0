package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/apperrors"
)

var errBackend = errors.New("backend unavailable")

type fakeUsers struct {
	mu       sync.Mutex
	accounts map[string]*models.AuthUser
	roles    map[uuid.UUID]models.Role
	profiles *fakeProfiles
	roleErr  error
}

func newFakeUsers(profiles *fakeProfiles) *fakeUsers {
	return &fakeUsers{
		accounts: map[string]*models.AuthUser{},
		roles:    map[uuid.UUID]models.Role{},
		profiles: profiles,
	}
}

func (f *fakeUsers) CreateAccount(_ context.Context, a *models.NewAccount) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[a.Email]; ok {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	id := uuid.New()
	f.accounts[a.Email] = &models.AuthUser{ID: id, Email: a.Email, PasswordHash: a.PasswordHash}
	f.roles[id] = a.Role
	p := &models.Profile{ID: id, Email: a.Email, FullName: a.FullName, Birthday: a.Birthday}
	if f.profiles != nil {
		f.profiles.add(p)
	}
	return p, nil
}

func (f *fakeUsers) GetCredentialsByEmail(_ context.Context, email string) (*models.AuthUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.accounts[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[email]
	return ok, nil
}

func (f *fakeUsers) GetRole(_ context.Context, id uuid.UUID) (models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return models.RoleMember, f.roleErr
	}
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return models.RoleMember, nil
}

func (f *fakeUsers) SetRole(_ context.Context, id uuid.UUID, role models.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[id] = role
	return nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
	err      error
}

func newFakeProfiles(ps ...*models.Profile) *fakeProfiles {
	f := &fakeProfiles{profiles: map[uuid.UUID]*models.Profile{}}
	for _, p := range ps {
		f.add(p)
	}
	return f
}

func (f *fakeProfiles) add(p *models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = p
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperrors.NewResourceNotFoundError("profile not found")
}

func (f *fakeProfiles) List(_ context.Context) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (f *fakeProfiles) ListWithBirthday(ctx context.Context) ([]*models.Profile, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Profile
	for _, p := range all {
		if p.Birthday != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return len(f.profiles), nil
}

func (f *fakeProfiles) Update(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.ID]; !ok {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) UpdateAvatar(_ context.Context, id uuid.UUID, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return apperrors.NewResourceNotFoundError("profile not found")
	}
	p.AvatarURL = &url
	return nil
}

type fakeContributions struct {
	mu        sync.Mutex
	rows      []*models.Contribution
	listErr   error
	createErr error
}

func (f *fakeContributions) Create(_ context.Context, c *models.Contribution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeContributions) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Contribution
	for _, c := range f.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContributions) ListAll(_ context.Context) ([]*models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]*models.Contribution(nil), f.rows...), nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []*models.Event
	rsvps  []*models.EventRSVP
	err    error
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEvents) ListWithRSVPCounts(_ context.Context) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*models.Event, 0, len(f.events))
	for _, e := range f.events {
		cp := *e
		for _, r := range f.rsvps {
			if r.EventID == e.ID {
				cp.RSVPCount++
			}
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (f *fakeEvents) CountFrom(_ context.Context, from time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, e := range f.events {
		if !e.EventDate.Before(from) {
			n++
		}
	}
	return n, nil
}

func (f *fakeEvents) ListDates(_ context.Context) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []time.Time
	for _, e := range f.events {
		out = append(out, e.EventDate)
	}
	return out, nil
}

func (f *fakeEvents) CreateRSVP(_ context.Context, r *models.EventRSVP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == r.EventID {
			r.ID = uuid.New()
			f.rsvps = append(f.rsvps, r)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("event not found")
}

type fakeBlog struct {
	posts []*models.BlogPost
	err   error
}

func (f *fakeBlog) Create(_ context.Context, p *models.BlogPost) error {
	p.ID = uuid.New()
	f.posts = append(f.posts, p)
	return nil
}

func (f *fakeBlog) ListPublished(_ context.Context) ([]*models.BlogPost, error) {
	return f.posts, f.err
}

func (f *fakeBlog) Count(_ context.Context) (int, error) {
	return len(f.posts), f.err
}

type fakeGallery struct {
	mu     sync.Mutex
	albums map[uuid.UUID]*models.GalleryAlbum
	photos map[uuid.UUID]*models.GalleryPhoto
}

func newFakeGallery() *fakeGallery {
	return &fakeGallery{albums: map[uuid.UUID]*models.GalleryAlbum{}, photos: map[uuid.UUID]*models.GalleryPhoto{}}
}

func (f *fakeGallery) CreateAlbum(_ context.Context, a *models.GalleryAlbum) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uuid.New()
	f.albums[a.ID] = a
	return nil
}

func (f *fakeGallery) ListAlbums(_ context.Context) ([]*models.GalleryAlbum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.GalleryAlbum
	for _, a := range f.albums {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeGallery) GetAlbum(_ context.Context, id uuid.UUID) (*models.GalleryAlbum, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.albums[id]; ok {
		return a, nil
	}
	return nil, apperrors.NewResourceNotFoundError("album not found")
}

func (f *fakeGallery) CreatePhoto(_ context.Context, p *models.GalleryPhoto) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.New()
	f.photos[p.ID] = p
	return nil
}

func (f *fakeGallery) ListPhotos(_ context.Context, albumID uuid.UUID) ([]*models.GalleryPhoto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.GalleryPhoto
	for _, p := range f.photos {
		if p.AlbumID == albumID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGallery) GetPhoto(_ context.Context, id uuid.UUID) (*models.GalleryPhoto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.photos[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewResourceNotFoundError("photo not found")
}

func (f *fakeGallery) DeletePhoto(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.photos[id]; !ok {
		return apperrors.NewResourceNotFoundError("photo not found")
	}
	delete(f.photos, id)
	return nil
}

func (f *fakeGallery) CountPhotos(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.photos), nil
}

type fakeChat struct {
	mu       sync.Mutex
	messages []*models.ChatMessage
	countErr error
}

func (f *fakeChat) Create(_ context.Context, m *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = uuid.New()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeChat) List(_ context.Context) ([]*models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.ChatMessage(nil), f.messages...), nil
}

func (f *fakeChat) CountSince(_ context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, m := range f.messages {
		if !m.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// fakeBucket records removals and can be told to fail them
type fakeBucket struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	removeErr error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: map[string][]byte{}}
}

func (b *fakeBucket) Upload(_ context.Context, bucket, objectPath string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[bucket+"/"+objectPath] = data
	return nil
}

func (b *fakeBucket) PublicURL(bucket, objectPath string) string {
	return "http://portal.test/storage/" + bucket + "/" + objectPath
}

func (b *fakeBucket) Remove(_ context.Context, bucket string, objectPaths ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range objectPaths {
		b.removed = append(b.removed, bucket+"/"+p)
		delete(b.objects, bucket+"/"+p)
	}
	return b.removeErr
}
