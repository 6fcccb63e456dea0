package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/helpers"
)

func render(t *testing.T, name string, data map[string]interface{}) string {
	t.Helper()
	tmpl, err := Load(time.UTC)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func viewer(role models.Role) *models.Viewer {
	return &models.Viewer{Role: role, Profile: &models.Profile{ID: uuid.New(), FullName: "Wanjiru Kingori"}}
}

func TestEveryPageIsDefined(t *testing.T) {
	tmpl, err := Load(time.UTC)
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "auth.html", "dashboard.html", "contributions.html", "events.html",
		"gallery.html", "album.html", "blog.html", "chat.html", "reports.html",
		"members.html", "profile.html", "not_found.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestNavigationShowsLoginWhenSignedOut(t *testing.T) {
	out := render(t, "not_found.html", map[string]interface{}{})
	assert.Contains(t, out, `href="/auth"`)
	assert.NotContains(t, out, "/auth/logout")
	assert.Contains(t, out, "Page not found")
}

func TestNavigationShowsInitialsWhenSignedIn(t *testing.T) {
	out := render(t, "not_found.html", map[string]interface{}{
		"Viewer": viewer(models.RoleMember),
		"Active": "/events",
	})
	assert.Contains(t, out, "/auth/logout")
	assert.Contains(t, out, ">WK<")
	assert.Contains(t, out, `<a href="/events" class="active">Events</a>`)
}

func TestDashboardRendersBirthdays(t *testing.T) {
	b := time.Date(1990, time.October, 20, 0, 0, 0, 0, time.UTC)
	out := render(t, "dashboard.html", map[string]interface{}{
		"Viewer": viewer(models.RoleMember),
		"Data": map[string]interface{}{
			"MyContributions": 12500.0,
			"UpcomingEvents":  2,
			"TotalMembers":    14,
			"RecentMessages":  3,
			"Birthdays": []helpers.UpcomingBirthday[*models.Profile]{
				{Item: &models.Profile{FullName: "Kamau Kingori", Birthday: &b}, Days: 2},
			},
		},
	})
	assert.Contains(t, out, "Welcome back, Wanjiru Kingori!")
	assert.Contains(t, out, "KES 12,500")
	assert.Contains(t, out, "October 20")
	assert.Contains(t, out, "In 2 days")
}

func TestEventsCreateFormOnlyForAdmins(t *testing.T) {
	events := []*models.Event{{ID: uuid.New(), Title: "Reunion", EventDate: time.Date(2026, 12, 24, 15, 0, 0, 0, time.UTC), RSVPCount: 4}}

	member := render(t, "events.html", map[string]interface{}{"Viewer": viewer(models.RoleMember), "Events": events})
	assert.NotContains(t, member, "Create Event")
	assert.Contains(t, member, "4 RSVPs")

	admin := render(t, "events.html", map[string]interface{}{"Viewer": viewer(models.RoleAdmin), "Events": events, "IsAdmin": true})
	assert.Contains(t, admin, "Create Event")
}

func TestAlbumDeleteButtonFollowsOwnership(t *testing.T) {
	v := viewer(models.RoleMember)
	mine := &models.GalleryPhoto{ID: uuid.New(), ImageURL: "/storage/gallery-photos/a/b.png", UploadedBy: v.Profile.ID}
	theirs := &models.GalleryPhoto{ID: uuid.New(), ImageURL: "/storage/gallery-photos/c/d.png", UploadedBy: uuid.New()}

	out := render(t, "album.html", map[string]interface{}{
		"Viewer": v,
		"UserID": v.Profile.ID,
		"Album":  &models.GalleryAlbum{ID: uuid.New(), Title: "Reunion"},
		"Photos": []*models.GalleryPhoto{mine, theirs},
	})
	assert.Contains(t, out, "/gallery/photos/"+mine.ID.String()+"/delete")
	assert.NotContains(t, out, "/gallery/photos/"+theirs.ID.String()+"/delete")
}

func TestContributionsPromptsLoginWhenSignedOut(t *testing.T) {
	out := render(t, "contributions.html", map[string]interface{}{})
	assert.Contains(t, out, "Login to contribute")
}

func TestChatUnloadHandlerRegisteredOnce(t *testing.T) {
	out := render(t, "chat.html", map[string]interface{}{"Viewer": viewer(models.RoleMember)})
	assert.Equal(t, 1, strings.Count(out, `"beforeunload"`))

	start := strings.Index(out, "function connect() {")
	require.GreaterOrEqual(t, start, 0)
	end := strings.Index(out[start:], "\n  }\n")
	require.Greater(t, end, 0)
	assert.NotContains(t, out[start:start+end], "beforeunload", "reconnects must not add listeners")
}
