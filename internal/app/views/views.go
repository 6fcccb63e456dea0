// Package views holds the embedded HTML templates of the portal
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/pkg/helpers"
)

//go:embed templates/*.html
var files embed.FS

// NavItem is one link of the navigation bar
type NavItem struct {
	Path  string
	Label string
}

// NavItems are the navigation links in display order
var NavItems = []NavItem{
	{Path: "/", Label: "Home"},
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/contributions", Label: "Contributions"},
	{Path: "/events", Label: "Events"},
	{Path: "/gallery", Label: "Gallery"},
	{Path: "/blog", Label: "Blog"},
	{Path: "/chat", Label: "Chat"},
	{Path: "/reports", Label: "Reports"},
	{Path: "/members", Label: "Members"},
	{Path: "/profile", Label: "Profile"},
}

// StatCard is the data of the stat card partial
type StatCard struct {
	Title       string
	Value       string
	Description string
	Link        string
}

// Load parses every template; dates render in loc
func Load(loc *time.Location) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap(loc)).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// FuncMap returns the helpers available to templates
func FuncMap(loc *time.Location) template.FuncMap {
	in := func(t time.Time) time.Time { return t.In(loc) }

	return template.FuncMap{
		"navItems": func() []NavItem { return NavItems },
		"kes":      helpers.FormatKES,
		"initials": helpers.Initials,
		"statCard": func(title, value, description, link string) StatCard {
			return StatCard{Title: title, Value: value, Description: description, Link: link}
		},
		"date":     func(t time.Time) string { return in(t).Format("January 2, 2006") },
		"dateTime": func(t time.Time) string { return in(t).Format("Mon, January 2, 2006 at 3:04 PM") },
		"clock":    func(t time.Time) string { return in(t).Format("15:04") },
		"birthday": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			// Birthdays are calendar dates; never shift them by zone.
			return t.Format("January 2")
		},
		"calendarDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"inputDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format(helpers.DateLayout)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"daysLabel": func(days int) string {
			switch days {
			case 0:
				return "Today!"
			case 1:
				return "Tomorrow"
			default:
				return fmt.Sprintf("In %d days", days)
			}
		},
		"contributionTypes": func() []models.ContributionType { return models.ContributionTypes },
		"paymentMethods":    func() []models.PaymentMethod { return models.PaymentMethods },
		"rsvpStatuses": func() []models.RSVPStatus {
			return []models.RSVPStatus{models.RSVPAttending, models.RSVPMaybe, models.RSVPDeclined}
		},
	}
}
