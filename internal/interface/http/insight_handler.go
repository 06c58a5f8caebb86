package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/insight"
	"github.com/oksasatya/smart-health-api/internal/application/tracker"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
	"github.com/oksasatya/smart-health-api/pkg/response"
	"github.com/oksasatya/smart-health-api/pkg/validation"
)

type InsightHandler struct {
	Insight *insight.Service
	Tracker *tracker.Service
	Logger  *logrus.Logger
}

func NewInsightHandler(ins *insight.Service, tr *tracker.Service, logger *logrus.Logger) *InsightHandler {
	return &InsightHandler{Insight: ins, Tracker: tr, Logger: logger}
}

type reportRequest struct {
	Days int `json:"days" binding:"omitempty,gte=1,lte=90"`
}

type exportRequest struct {
	Text string `json:"text" binding:"required,max=20000"`
}

func (h *InsightHandler) Insight(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	summary, err := h.Tracker.Summary(c.Request.Context(), ident.ID, tracker.DefaultWindowDays)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", ident.ID).Warn("load summary for insight failed")
		summary = entity.WeeklySummary{}
	}
	text := h.Insight.RequestInsight(c.Request.Context(), summary)
	response.Success(c, http.StatusOK, gin.H{"insight": text, "summary": summary}, "insight", nil)
}

func (h *InsightHandler) Report(c *gin.Context) {
	var req reportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
	}
	ident, _ := middleware.CurrentIdentity(c)
	logs, err := h.Tracker.Recent(c.Request.Context(), ident.ID, req.Days)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", ident.ID).Error("load logs for report failed")
		response.Error[any](c, http.StatusServiceUnavailable, "could not load health data", nil)
		return
	}
	data := make([]entity.DailyLog, 0, len(logs))
	for _, l := range logs {
		data = append(data, *l)
	}
	text := h.Insight.RequestReport(c.Request.Context(), data)
	response.Success(c, http.StatusOK, gin.H{"report": text, "days": len(data)}, "report", nil)
}

func (h *InsightHandler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ident, _ := middleware.CurrentIdentity(c)
	url, err := h.Insight.ExportReport(c.Request.Context(), ident.ID, req.Text)
	switch {
	case errors.Is(err, insight.ErrEmptyReport):
		response.Error[any](c, http.StatusBadRequest, "report is empty", nil)
	case errors.Is(err, insight.ErrExportUnavailable):
		response.Error[any](c, http.StatusServiceUnavailable, "report export is not configured", nil)
	case err != nil:
		response.Error[any](c, http.StatusBadGateway, "report export failed", nil)
	default:
		response.Success(c, http.StatusCreated, gin.H{"url": url}, "report exported", nil)
	}
}
