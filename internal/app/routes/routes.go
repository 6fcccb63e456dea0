package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/familyhub/portal/internal/app/controllers"
	"github.com/familyhub/portal/internal/app/models"
	"github.com/familyhub/portal/internal/middleware"
	"github.com/familyhub/portal/internal/pkg/metrics"
	"github.com/familyhub/portal/internal/pkg/websocket"
)

// ChatChannel is the websocket channel fed by chat_messages inserts
const ChatChannel = "chat_messages"

// Controllers groups every controller the router mounts
type Controllers struct {
	Home         *controllers.HomeController
	Auth         *controllers.AuthController
	Dashboard    *controllers.DashboardController
	Contribution *controllers.ContributionController
	Event        *controllers.EventController
	Gallery      *controllers.GalleryController
	Blog         *controllers.BlogController
	Chat         *controllers.ChatController
	Report       *controllers.ReportController
	Member       *controllers.MemberController
	Health       *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) {
	router.GET("/metrics", metrics.Handler())

	// --- Pages open to visitors; the caller is loaded when a session exists ---
	public := router.Group("/")
	public.Use(authMiddleware.LoadViewer())
	{
		public.GET("/", c.Home.Index)
		public.GET("/auth", c.Auth.Page)
		public.POST("/auth/login", c.Auth.Login)
		public.POST("/auth/signup", c.Auth.SignUp)
		public.POST("/auth/logout", c.Auth.Logout)

		public.GET("/contributions", c.Contribution.Index)
		public.GET("/events", c.Event.Index)
		public.GET("/gallery", c.Gallery.Index)
		public.GET("/gallery/albums/:id", c.Gallery.ShowAlbum)
	}

	// --- Pages that need a session ---
	authenticated := router.Group("/")
	authenticated.Use(authMiddleware.RequireSession(), authMiddleware.LoadViewer())
	{
		authenticated.GET("/dashboard", c.Dashboard.Index)

		authenticated.POST("/contributions", c.Contribution.Create)
		authenticated.GET("/contributions/export.xlsx", c.Contribution.Export)

		authenticated.POST("/events/:id/rsvp", c.Event.RSVP)
		authenticated.POST("/events", authMiddleware.RoleRequired(models.RoleAdmin, "/events"), c.Event.Create)

		authenticated.POST("/gallery/albums", authMiddleware.RoleRequired(models.RoleAdmin, "/gallery"), c.Gallery.CreateAlbum)
		authenticated.POST("/gallery/albums/:id/photos", c.Gallery.UploadPhoto)
		authenticated.POST("/gallery/photos/:id/delete", c.Gallery.DeletePhoto)

		authenticated.GET("/blog", c.Blog.Index)
		authenticated.POST("/blog", c.Blog.Create)

		authenticated.GET("/chat", c.Chat.Index)
		authenticated.POST("/chat/messages", c.Chat.Send)

		authenticated.GET("/reports", c.Report.Index)
		authenticated.GET("/reports/export.xlsx", c.Report.Export)

		authenticated.GET("/members", c.Member.Members)
		authenticated.GET("/profile", c.Member.Profile)
		authenticated.POST("/profile", c.Member.UpdateProfile)
		authenticated.POST("/profile/avatar", c.Member.UploadAvatar)
	}

	// --- JSON API ---
	api := router.Group("/api")
	if len(allowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	{
		api.GET("/health", c.Health.Health)

		chat := api.Group("/chat")
		chat.Use(authMiddleware.RequireSession())
		{
			chat.GET("/messages", c.Chat.ListJSON)
			chat.GET("/ws", wsHandler.Subscribe(ChatChannel))
		}
	}

	router.NoRoute(authMiddleware.LoadViewer(), c.Health.NotFound)
}
