package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/smart-health-api/internal/container"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	handlers "github.com/oksasatya/smart-health-api/internal/interface/http"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
)

// AssistantModule exposes the chat assistant to patients and doctors.
type AssistantModule struct {
	Handler *handlers.AssistantHandler
}

func NewAssistantModule(h *handlers.AssistantHandler) *AssistantModule {
	return &AssistantModule{Handler: h}
}

func (m *AssistantModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/assistant/conversations")
	g.Use(middleware.RequireRoles(entity.RoleUser, entity.RoleDoctor))
	sendLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyBySession(), nil)
	{
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id/language", m.Handler.SetLanguage)
		g.POST("/:id/messages", sendLimiter, m.Handler.Send)
		g.DELETE("/:id", m.Handler.Close)
	}
}
