package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	handlers "github.com/oksasatya/smart-health-api/internal/interface/http"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
)

// DirectoryModule serves the doctor patient list and the admin pages.
type DirectoryModule struct {
	Handler *handlers.DirectoryHandler
}

func NewDirectoryModule(h *handlers.DirectoryHandler) *DirectoryModule {
	return &DirectoryModule{Handler: h}
}

func (m *DirectoryModule) Register(rg *gin.RouterGroup) {
	rg.GET("/doctor/patients", middleware.RequireRoles(entity.RoleDoctor), m.Handler.Patients)

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireRoles(entity.RoleAdmin))
	{
		admin.GET("/users", m.Handler.Users)
		admin.GET("/users/search", m.Handler.Search)
		admin.GET("/system", m.Handler.System)
	}
}
