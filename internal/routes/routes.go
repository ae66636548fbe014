package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/config"
	"hospital-portal/internal/guard"
	"hospital-portal/internal/handlers"
	"hospital-portal/internal/middleware"
	"hospital-portal/internal/upstream"
)

// SetupRoutes configures the portal routes. Paths mirror the backend
// surface the browser already speaks, with the portal's own rules
// (session resolution, guarding, validation, rate limits) applied in
// front.
func SetupRoutes(router *gin.Engine, api *upstream.Client, cfg *config.Config, log *zap.Logger) {
	authHandler := handlers.NewAuthHandler(api, log)
	profileHandler := handlers.NewProfileHandler(api, log)
	appointmentHandler := handlers.NewAppointmentHandler(api, log)
	adminHandler := handlers.NewAdminHandler(api, log)

	router.Use(middleware.RequestID())
	router.Use(middleware.ResolveSession(api, log))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Public routes.
	router.GET("/user/checklogin", authHandler.CheckLogin)
	router.POST("/user/login", limiter.Middleware(), authHandler.Login)
	router.POST("/user/signup", limiter.Middleware(), authHandler.Signup)
	router.GET("/user/logout", authHandler.Logout)
	router.GET("/doctor/doctors", appointmentHandler.Doctors)

	// Booking submission is public on purpose: an unauthenticated submit
	// must answer with a login/signup prompt, not a redirect.
	router.POST("/appointments", appointmentHandler.Create)

	// Patient cabinet.
	dashboard := router.Group("/", middleware.Guard(guard.RouteDashboard))
	{
		dashboard.GET("/user/dashboard", profileHandler.Dashboard)
		dashboard.GET("/appointment/appointments", appointmentHandler.List)
		dashboard.DELETE("/user/appointments/:id", appointmentHandler.Cancel)
		dashboard.POST("/user/avatar", profileHandler.UploadAvatar)
		dashboard.DELETE("/user/avatar", profileHandler.RemoveAvatar)
	}

	// Admin panel.
	adminPanel := router.Group("/", middleware.Guard(guard.RouteAdminPanel))
	{
		adminPanel.GET("/getusers", adminHandler.ListUsers)
		adminPanel.DELETE("/delete/:id", adminHandler.DeleteUser)
		adminPanel.DELETE("/user/avatar/:id", profileHandler.RemoveUserAvatar)
	}

	// Account edit view.
	userEdit := router.Group("/", middleware.Guard(guard.RouteUserEdit))
	{
		userEdit.GET("/getuser/:id", adminHandler.GetUser)
		userEdit.PUT("/update/:id", adminHandler.UpdateUser)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
