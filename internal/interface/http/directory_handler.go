package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/directory"
	"github.com/oksasatya/smart-health-api/internal/application/system"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/response"
)

type DirectoryHandler struct {
	Directory *directory.Service
	Status    *system.Status
	Logger    *logrus.Logger
}

func NewDirectoryHandler(dir *directory.Service, status *system.Status, logger *logrus.Logger) *DirectoryHandler {
	return &DirectoryHandler{Directory: dir, Status: status, Logger: logger}
}

func (h *DirectoryHandler) Patients(c *gin.Context) {
	out, err := h.Directory.ListPatients(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		h.Logger.WithError(err).Error("list patients failed")
		response.Error[any](c, http.StatusServiceUnavailable, "could not load patients", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "patients", map[string]any{"count": len(out)})
}

func (h *DirectoryHandler) Users(c *gin.Context) {
	out, err := h.Directory.ListUsers(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusServiceUnavailable, "could not load users", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *DirectoryHandler) Search(c *gin.Context) {
	var role entity.Role
	if raw := c.Query("role"); raw != "" {
		r, err := entity.ParseRole(raw)
		if err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid role", map[string]string{"role": "must be one of: USER, DOCTOR, ADMIN"})
			return
		}
		role = r
	}
	out, err := h.Directory.SearchUsers(c.Request.Context(), c.Query("q"), role, queryInt(c, "size"))
	if err != nil {
		h.Logger.WithError(err).Error("search users failed")
		response.Error[any](c, http.StatusServiceUnavailable, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

func (h *DirectoryHandler) System(c *gin.Context) {
	report := h.Status.Check(c.Request.Context())
	response.Success(c, http.StatusOK, report, "system status", nil)
}
