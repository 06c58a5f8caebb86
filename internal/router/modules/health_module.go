package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/smart-health-api/internal/container"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	handlers "github.com/oksasatya/smart-health-api/internal/interface/http"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
)

// HealthModule covers the patient-only tracker, insight and report routes.
type HealthModule struct {
	Tracker *handlers.TrackerHandler
	Insight *handlers.InsightHandler
}

func NewHealthModule(tr *handlers.TrackerHandler, ins *handlers.InsightHandler) *HealthModule {
	return &HealthModule{Tracker: tr, Insight: ins}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	patient := rg.Group("/")
	patient.Use(middleware.RequireRoles(entity.RoleUser))
	genLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyBySession(), nil)
	{
		patient.POST("/tracker/logs", m.Tracker.Record)
		patient.GET("/tracker/logs", m.Tracker.List)
		patient.GET("/tracker/summary", m.Tracker.Summary)

		patient.POST("/insights", genLimiter, m.Insight.Insight)
		patient.POST("/reports", genLimiter, m.Insight.Report)
		patient.POST("/reports/export", genLimiter, m.Insight.Export)
	}
}
