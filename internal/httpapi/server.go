// Package httpapi exposes the service layer over HTTP. Handlers stay thin:
// they bind JSON, pass the authenticated caller id down explicitly, and map
// service errors to statuses in one place.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"habit-tracker/internal/service"
)

// Server aggregates the HTTP handlers with their services.
type Server struct {
	auth   *service.AuthService
	users  *service.UserService
	habits *service.HabitService
}

func New(auth *service.AuthService, users *service.UserService, habits *service.HabitService) *Server {
	return &Server{auth: auth, users: users, habits: habits}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/refresh-token", s.handleRefreshToken)
	auth.GET("/verify", s.requireAuth(), s.handleVerify)

	user := api.Group("/user", s.requireAuth())
	user.GET("/profile", s.handleGetProfile)
	user.PUT("/profile", s.handleUpdateProfile)

	habits := api.Group("/habits", s.requireAuth())
	habits.POST("", s.handleCreateHabit)
	habits.GET("", s.handleListHabits)
	habits.GET("/:id", s.handleGetHabit)
	habits.GET("/:id/calendar", s.handleCalendar)
	habits.PUT("/:id", s.handleEditHabit)
	habits.DELETE("/:id", s.handleDeleteHabit)
	habits.POST("/:id/toggle", s.handleToggleHabit)
	habits.POST("/:id/toggle-archive", s.handleToggleArchive)

	return r
}
