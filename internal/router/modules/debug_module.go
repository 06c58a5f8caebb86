package modules

import (
	"expvar"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/smart-health-api/internal/container"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
)

var publishOnce sync.Once

// DebugModule serves expvar: the assistant counters plus build info
// under "service".
type DebugModule struct {
	Generator string
	started   time.Time
}

func NewDebugModule(generator string) *DebugModule {
	return &DebugModule{Generator: generator, started: time.Now()}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	publishOnce.Do(func() {
		expvar.Publish("service", expvar.Func(func() any {
			return map[string]any{
				"generator":      m.Generator,
				"uptime_seconds": int64(time.Since(m.started).Seconds()),
			}
		}))
	})
	// private networks skip the per-IP limit
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
