package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/tracker"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
	"github.com/oksasatya/smart-health-api/pkg/response"
	"github.com/oksasatya/smart-health-api/pkg/validation"
)

const dateLayout = "2006-01-02"

type TrackerHandler struct {
	Tracker *tracker.Service
	Logger  *logrus.Logger
}

func NewTrackerHandler(tr *tracker.Service, logger *logrus.Logger) *TrackerHandler {
	return &TrackerHandler{Tracker: tr, Logger: logger}
}

type recordRequest struct {
	Date           string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Steps          int     `json:"steps" binding:"gte=0"`
	WaterIntakeML  int     `json:"water_intake_ml" binding:"gte=0"`
	SleepHours     float64 `json:"sleep_hours" binding:"gte=0,lte=24"`
	Mood           string  `json:"mood" binding:"omitempty,mood"`
	CaloriesBurned int     `json:"calories_burned" binding:"gte=0"`
	HeartRateAvg   int     `json:"heart_rate_avg" binding:"gte=0"`
}

func (h *TrackerHandler) Record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := tracker.RecordInput{
		Steps:          req.Steps,
		WaterIntakeML:  req.WaterIntakeML,
		SleepHours:     req.SleepHours,
		Mood:           req.Mood,
		CaloriesBurned: req.CaloriesBurned,
		HeartRateAvg:   req.HeartRateAvg,
	}
	if req.Date != "" {
		in.Date, _ = time.Parse(dateLayout, req.Date)
	}
	ident, _ := middleware.CurrentIdentity(c)
	l, err := h.Tracker.Record(c.Request.Context(), ident.ID, in)
	if errors.Is(err, tracker.ErrInvalidLog) {
		response.Error[any](c, http.StatusBadRequest, "invalid daily log", err.Error())
		return
	}
	if err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "could not save daily log", nil)
		return
	}
	response.Success(c, http.StatusCreated, l, "daily log saved", nil)
}

func (h *TrackerHandler) List(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	logs, err := h.Tracker.Recent(c.Request.Context(), ident.ID, queryInt(c, "days"))
	if err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "could not load daily logs", nil)
		return
	}
	response.Success(c, http.StatusOK, logs, "daily logs", map[string]any{"count": len(logs)})
}

func (h *TrackerHandler) Summary(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	sum, err := h.Tracker.Summary(c.Request.Context(), ident.ID, queryInt(c, "days"))
	if err != nil {
		response.Error[any](c, http.StatusServiceUnavailable, "could not load summary", nil)
		return
	}
	response.Success(c, http.StatusOK, sum, "summary", nil)
}

// queryInt returns 0 for a missing or malformed value.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
