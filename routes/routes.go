package routes

import (
	"foodieride-api/handlers"
	"foodieride-api/middleware"
	"foodieride-api/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, sessions *middleware.SessionManager) {
	r.Use(middleware.LoadSession(sessions))

	// ── Public routes ──────────────────────────────────────────────
	r.GET("/", h.Index)
	r.GET("/index", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/state-machine", handlers.GetStateMachineInfo)

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/")
	customer.Use(middleware.RequireRole(sessions, models.RoleCustomer, "home"))
	{
		customer.GET("/home", h.Home)
		customer.GET("/dashboard", h.Dashboard)
		customer.GET("/book", h.BookPage)
		customer.POST("/book", h.Book)
	}

	// ── Rider routes ───────────────────────────────────────────────
	rider := r.Group("/")
	rider.Use(middleware.RequireRole(sessions, models.RoleRider, "ride"))
	{
		rider.GET("/ride", h.Ride)
	}

	// ── Captain routes ─────────────────────────────────────────────
	captain := r.Group("/")
	captain.Use(middleware.RequireRole(sessions, models.RoleCaptain, "captain"))
	{
		captain.GET("/captain", h.Captain)
		captain.POST("/accept", h.Accept)
	}
}
