package routes

import (
	"net/http"
	"time"

	"memoria/handlers"
	"memoria/middleware"
	"memoria/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.GET("/session", hb.Auth.SessionHandler)
		api.POST("/reset-password", hb.Auth.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterProfileRoutes registers account and patient profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/users/me", hb.Profile.GetUserHandler)
		api.PATCH("/users/me", hb.Profile.UpdateUserHandler)
		api.DELETE("/users/me", hb.Profile.DeleteUserHandler)
		api.GET("/profile", hb.Profile.GetProfileHandler)
		api.PATCH("/profile", hb.Profile.UpdateProfileHandler)
	}
}

// RegisterReminderRoutes registers the reminder engine endpoints.
func RegisterReminderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reminders")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", hb.Reminder.ListRemindersHandler)
		api.POST("", hb.Reminder.CreateReminderHandler)
		api.GET("/upcoming", hb.Reminder.ListUpcomingHandler)
		api.GET("/overdue", hb.Reminder.ListOverdueHandler)
		api.GET("/notification-permission", hb.Reminder.NotificationPermissionHandler)
		api.PATCH("/:id", hb.Reminder.UpdateReminderHandler)
		api.DELETE("/:id", hb.Reminder.DeleteReminderHandler)
		api.POST("/:id/complete", hb.Reminder.CompleteReminderHandler)
		api.POST("/:id/snooze", hb.Reminder.SnoozeReminderHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backends": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterReminderRoutes(r, hb)
	RegisterHealthRoute(r)
}
