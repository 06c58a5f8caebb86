package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/smart-health-api/internal/container"
	handlers "github.com/oksasatya/smart-health-api/internal/interface/http"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
)

// SessionModule wires login, signup, logout and route resolution.
// Public: POST /api/login, POST /api/signup, GET /api/me, GET /api/route
// Protected: POST /api/logout, GET /api/navigation
type SessionModule struct {
	Handler *handlers.SessionHandler
}

func NewSessionModule(h *handlers.SessionHandler) *SessionModule {
	return &SessionModule{Handler: h}
}

func (m *SessionModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath(), nil)
	signupLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.GET("/me", m.Handler.Me)
	rg.GET("/route", m.Handler.Route)

	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth())
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/navigation", m.Handler.Navigation)
	}
}
