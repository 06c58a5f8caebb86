package router

import (
	"context"
	"time"

	"github.com/oksasatya/smart-health-api/config"
	"github.com/oksasatya/smart-health-api/internal/application/assistant"
	"github.com/oksasatya/smart-health-api/internal/application/directory"
	"github.com/oksasatya/smart-health-api/internal/application/identity"
	"github.com/oksasatya/smart-health-api/internal/application/insight"
	"github.com/oksasatya/smart-health-api/internal/application/system"
	"github.com/oksasatya/smart-health-api/internal/application/tracker"
	"github.com/oksasatya/smart-health-api/internal/container"
	repo "github.com/oksasatya/smart-health-api/internal/domain/repository"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/gemini"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/smart-health-api/internal/infrastructure/postgres"
	"github.com/oksasatya/smart-health-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/smart-health-api/internal/interface/http"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
	"github.com/oksasatya/smart-health-api/internal/router/modules"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/kvstore"
	"github.com/oksasatya/smart-health-api/pkg/mailer"
)

// Deps are the application services built from the container singletons.
// Missing infrastructure is replaced by in-process equivalents so the API
// runs with nothing but the binary.
type Deps struct {
	Sessions      *identity.Sessions
	Conversations *assistant.Registry
	Insight       *insight.Service
	Tracker       *tracker.Service
	Directory     *directory.Service
	Status        *system.Status
}

const pingTimeout = 2 * time.Second

func currentConfig() *config.Config {
	if cfg := container.GetConfig(); cfg != nil {
		return cfg
	}
	return config.Load()
}

func BuildDeps() Deps {
	cfg := currentConfig()
	logger := container.GetLogger()

	var (
		store    kvstore.Store = kvstore.NewMemory()
		accounts repo.AccountRepository
		logs     repo.DailyLogRepository
	)
	if rdb := container.GetRedis(); rdb != nil {
		store = kvstore.NewRedis(rdb, cfg.SessionTTL)
	}
	if pool := container.GetPGPool(); pool != nil {
		accounts = pginfra.NewAccountRepository(pool)
		logs = pginfra.NewDailyLogRepository(pool)
	} else {
		accounts = memory.NewAccountRepository()
		logs = memory.NewDailyLogRepository()
	}

	var llm container.LLM = gemini.NewMock()
	if g := container.GetLLM(); g != nil {
		llm = g
	}

	status := system.NewStatus(cfg.GeneratorName(), 0)

	var searcher directory.Searcher
	var index identity.AccountIndexer
	if es := container.GetES(); es != nil {
		x := search.NewAccountIndex(es, cfg.ESAccountsIndex, logger)
		searcher, index = x, x
		status.Register("elasticsearch", x.Ping)
	}
	var notifier identity.WelcomeNotifier
	if pub := container.GetRabbitPub(); pub != nil {
		notifier = mailer.NewWelcomeQueue(pub, cfg.AppName, cfg.DashboardURL, cfg.SupportURL)
		status.Register("rabbitmq", pub.Check)
	}
	var uploader insight.Uploader
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		uploader = helpers.NewGCSBucket(gcs, cfg.GCSBucket)
	}
	if rdb := container.GetRedis(); rdb != nil {
		status.Register("redis", func(ctx context.Context) error { return helpers.PingRedis(ctx, rdb, pingTimeout) })
	}
	if pool := container.GetPGPool(); pool != nil {
		status.Register("postgres", pool.Ping)
	}

	backend := identity.NewDirectoryBackend(
		identity.NewTemplateBackend(cfg.LoginLatency, cfg.SignupLatency),
		accounts, index, notifier, logger,
	)
	return Deps{
		Sessions:      identity.NewSessions(backend, store, logger),
		Conversations: assistant.NewRegistry(llm, logger, cfg.MaxConversationsPerClient),
		Insight:       insight.NewService(llm, uploader, logger),
		Tracker:       tracker.NewService(logs, logger),
		Directory:     directory.NewService(accounts, searcher, logger),
		Status:        status,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) Deps {
	cfg := currentConfig()
	deps := BuildDeps()
	logger := container.GetLogger()

	jwt := container.GetJWT()
	if jwt == nil {
		jwt = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)
	}
	cookies := container.GetCookies()
	if cookies == nil {
		cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	}

	r.Use(middleware.RealIP(), middleware.Session(deps.Sessions, jwt, cookies, logger))

	r.Add(modules.NewSessionModule(handlers.NewSessionHandler(deps.Conversations, cookies, logger)))
	r.Add(modules.NewAssistantModule(handlers.NewAssistantHandler(deps.Conversations, logger)))
	r.Add(modules.NewHealthModule(
		handlers.NewTrackerHandler(deps.Tracker, logger),
		handlers.NewInsightHandler(deps.Insight, deps.Tracker, logger),
	))
	r.Add(modules.NewDirectoryModule(handlers.NewDirectoryHandler(deps.Directory, deps.Status, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(cfg.GeneratorName()))
	}
	return deps
}
