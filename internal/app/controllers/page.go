// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/export"
	"github.com/familyhub/portal/internal/pkg/notify"
)

// Page template names
const (
	pageHome          = "home.html"
	pageAuth          = "auth.html"
	pageDashboard     = "dashboard.html"
	pageContributions = "contributions.html"
	pageEvents        = "events.html"
	pageGallery       = "gallery.html"
	pageAlbum         = "album.html"
	pageBlog          = "blog.html"
	pageChat          = "chat.html"
	pageReports       = "reports.html"
	pageMembers       = "members.html"
	pageProfile       = "profile.html"
	pageNotFound      = "not_found.html"
)

// renderPage renders a page with the data every layout needs:
// the caller, queued toasts and the active navigation link.
func renderPage(ctx *gin.Context, status int, name, title, active string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	viewer := middleware.GetViewer(ctx)
	userID, _ := middleware.GetUserID(ctx)

	data["Title"] = title
	data["Active"] = active
	data["Viewer"] = viewer
	data["UserID"] = userID
	data["IsAdmin"] = viewer != nil && viewer.IsAdmin()
	data["Toasts"] = notify.Pop(ctx)

	ctx.HTML(status, name, data)
}

// redirect finishes a form submission (Post/Redirect/Get)
func redirect(ctx *gin.Context, path string) {
	notify.Save(ctx)
	ctx.Redirect(http.StatusSeeOther, path)
}

// renderNotFound renders the 404 page
func renderNotFound(ctx *gin.Context) {
	renderPage(ctx, http.StatusNotFound, pageNotFound, "Page not found", "", nil)
}

// paramUUID parses a path parameter, rendering the 404 page when it is not a UUID
func paramUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		renderNotFound(ctx)
		return uuid.Nil, false
	}
	return id, true
}

// requireUserID returns the caller's ID; routes behind RequireSession always have one
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, middleware.LoginPath)
		return uuid.Nil, false
	}
	return userID, true
}

// sendSpreadsheet answers with an XLSX attachment
func sendSpreadsheet(ctx *gin.Context, filename string, data []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, export.ContentType, data)
}

// backTo returns the page the form was posted from when it is on this site, else fallback
func backTo(ctx *gin.Context, fallback string) string {
	ref, err := url.Parse(ctx.Request.Referer())
	if err != nil || ref.Path == "" || ref.Host != ctx.Request.Host {
		return fallback
	}
	return ref.Path
}
