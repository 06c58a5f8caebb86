package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/smart-health-api/config"
	"github.com/oksasatya/smart-health-api/internal/container"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.SessionCookie && ck.MaxAge >= 0 && ck.Value != "" {
			c.cookie = ck
		}
	}
	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(c.t, w.Code, env.Status)
	if out != nil && len(env.Data) > 0 {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return w.Code
}

func newTestEngine(t *testing.T, tweaks ...func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()
	cfg := &config.Config{
		AppName:                   "smart-health-test",
		Env:                       "test",
		JWTSecret:                 "test-secret",
		JWTIssuer:                 "smart-health-test",
		MaxConversationsPerClient: 3,
		SessionTTL:                time.Hour,
	}
	for _, tweak := range tweaks {
		tweak(cfg)
	}
	container.SetConfig(cfg)
	container.SetLogger(helpers.NopLogger())
	t.Cleanup(func() { container.SetConfig(nil) })

	engine := NewEngine(container.GetConfig())
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return engine
}

type sessionData struct {
	Authenticated bool `json:"authenticated"`
	User          *struct {
		ID      string          `json:"id"`
		Role    string          `json:"role"`
		Email   string          `json:"email"`
		Profile json.RawMessage `json:"profile"`
	} `json:"user"`
	Navigation []struct {
		Path string `json:"path"`
	} `json:"navigation"`
}

type conversationData struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Messages []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	} `json:"messages"`
}

func TestPatientJourney(t *testing.T) {
	c := newClient(t, newTestEngine(t))

	var me sessionData
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/me", nil, &me))
	assert.False(t, me.Authenticated)
	require.NotNil(t, c.cookie)

	var route struct {
		Decision string `json:"decision"`
		Redirect string `json:"redirect"`
	}
	c.do(http.MethodGet, "/api/route?path=/assistant", nil, &route)
	assert.Equal(t, "redirect_login", route.Decision)
	assert.Equal(t, "/login", route.Redirect)

	var login sessionData
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"email": "alex@x.com", "password": "whatever", "role": "user",
	}, &login))
	require.NotNil(t, login.User)
	assert.Equal(t, "USER", login.User.Role)
	assert.Equal(t, "alex@x.com", login.User.Email)
	assert.NotEmpty(t, login.User.Profile)
	assert.Len(t, login.Navigation, 5)

	c.do(http.MethodGet, "/api/route?path=/admin/users", nil, &route)
	assert.Equal(t, "redirect_root", route.Decision)

	var conv conversationData
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/assistant/conversations", nil, &conv))
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "assistant", conv.Messages[0].Role)

	var sent struct {
		Outcome      string           `json:"outcome"`
		Conversation conversationData `json:"conversation"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/assistant/conversations/"+conv.ID+"/messages", map[string]string{"text": "What is hypertension?"}, &sent))
	assert.Equal(t, "replied", sent.Outcome)
	require.Len(t, sent.Conversation.Messages, 3)
	assert.Equal(t, "What is hypertension?", sent.Conversation.Messages[1].Text)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/assistant/conversations/"+conv.ID+"/messages", map[string]string{"text": "   "}, nil))

	c.do(http.MethodPut, "/api/assistant/conversations/"+conv.ID+"/language", map[string]string{"lang": "ta"}, &conv)
	assert.Equal(t, "ta", conv.Language)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/api/assistant/conversations/"+conv.ID+"/language", map[string]string{"lang": "fr"}, nil))

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/tracker/logs", map[string]any{
		"steps": 6000, "water_intake_ml": 1200, "sleep_hours": 6.5, "mood": "Tired",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/tracker/logs", map[string]any{"sleep_hours": 30}, nil))

	var summary struct {
		Days              int `json:"days"`
		AvgSteps          int `json:"avg_steps"`
		LowWaterTiredDays int `json:"low_water_tired_days"`
	}
	c.do(http.MethodGet, "/api/tracker/summary", nil, &summary)
	assert.Equal(t, 1, summary.Days)
	assert.Equal(t, 6000, summary.AvgSteps)
	assert.Equal(t, 1, summary.LowWaterTiredDays)

	var ins struct {
		Insight string `json:"insight"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/insights", nil, &ins))
	assert.NotEmpty(t, ins.Insight)

	var rep struct {
		Report string `json:"report"`
		Days   int    `json:"days"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/reports", nil, &rep))
	assert.NotEmpty(t, rep.Report)
	assert.Equal(t, 1, rep.Days)

	assert.Equal(t, http.StatusServiceUnavailable, c.do(http.MethodPost, "/api/reports/export", map[string]string{"text": rep.Report}, nil))
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/admin/users", nil, nil))
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/doctor/patients", nil, nil))

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/logout", nil, nil))
	c.do(http.MethodGet, "/api/me", nil, &me)
	assert.False(t, me.Authenticated)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/assistant/conversations/"+conv.ID, nil, nil))
}

func TestDirectoryAcrossRoles(t *testing.T) {
	engine := newTestEngine(t)

	patient := newClient(t, engine)
	require.Equal(t, http.StatusCreated, patient.do(http.MethodPost, "/api/signup", map[string]string{
		"name": "Priya Raman", "email": "priya@x.com", "password": "password123", "role": "USER",
	}, nil))

	doctor := newClient(t, engine)
	require.Equal(t, http.StatusOK, doctor.do(http.MethodPost, "/api/login", map[string]string{
		"email": "sarah@hospital.com", "password": "x", "role": "DOCTOR",
	}, nil))
	var patients []struct {
		Email string `json:"email"`
	}
	require.Equal(t, http.StatusOK, doctor.do(http.MethodGet, "/api/doctor/patients", nil, &patients))
	require.Len(t, patients, 1)
	assert.Equal(t, "priya@x.com", patients[0].Email)
	assert.Equal(t, http.StatusForbidden, doctor.do(http.MethodPost, "/api/tracker/logs", map[string]any{"steps": 1}, nil))

	admin := newClient(t, engine)
	require.Equal(t, http.StatusOK, admin.do(http.MethodPost, "/api/login", map[string]string{
		"email": "admin@sys.com", "password": "x", "role": "ADMIN",
	}, nil))
	var found []struct {
		Name string `json:"name"`
	}
	require.Equal(t, http.StatusOK, admin.do(http.MethodGet, "/api/admin/users/search?q=priya", nil, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Priya Raman", found[0].Name)
	assert.Equal(t, http.StatusBadRequest, admin.do(http.MethodGet, "/api/admin/users/search?role=ROOT", nil, nil))

	var report struct {
		Healthy   bool   `json:"healthy"`
		Generator string `json:"generator"`
	}
	require.Equal(t, http.StatusOK, admin.do(http.MethodGet, "/api/admin/system", nil, &report))
	assert.True(t, report.Healthy)
	assert.Equal(t, "offline", report.Generator)
	assert.Equal(t, http.StatusForbidden, admin.do(http.MethodPost, "/api/assistant/conversations", nil, nil))
}

func TestLoginValidation(t *testing.T) {
	c := newClient(t, newTestEngine(t))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/login", map[string]string{"email": "nope", "password": "x", "role": "USER"}, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/login", map[string]string{"email": "a@b.co", "password": "x", "role": "ROOT"}, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/navigation", nil, nil))
}

func TestDebugVars(t *testing.T) {
	engine := newTestEngine(t, func(c *config.Config) { c.DebugMetricsEnabled = true })
	c := newClient(t, engine)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"email": "a@b.co", "password": "x", "role": "USER",
	}, nil))
	var conv conversationData
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/assistant/conversations", nil, &conv))
	c.do(http.MethodPost, "/api/assistant/conversations/"+conv.ID+"/messages", map[string]string{"text": "hi"}, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var vars map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	assert.Contains(t, vars, "assistant")
	require.Contains(t, vars, "service")
	assert.Contains(t, string(vars["service"]), `"generator":"offline"`)
}

func TestPatientsSeeOnlyTheirOwnLogs(t *testing.T) {
	engine := newTestEngine(t)
	login := func(email string) *client {
		c := newClient(t, engine)
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
			"email": email, "password": "x", "role": "user",
		}, nil))
		return c
	}
	a := login("a@x.com")
	b := login("b@x.com")

	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/tracker/logs", map[string]any{"steps": 4321}, nil))

	var logs []struct {
		Steps int `json:"steps"`
	}
	require.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/tracker/logs", nil, &logs))
	assert.Empty(t, logs)

	logs = nil
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/tracker/logs", nil, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, 4321, logs[0].Steps)

	// same person on another browser reaches the same data
	again := login("A@x.com")
	logs = nil
	require.Equal(t, http.StatusOK, again.do(http.MethodGet, "/api/tracker/logs", nil, &logs))
	assert.Len(t, logs, 1)
}

func TestReloginDropsConversations(t *testing.T) {
	c := newClient(t, newTestEngine(t))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"email": "alex@x.com", "password": "x", "role": "USER",
	}, nil))
	var conv conversationData
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/assistant/conversations", nil, &conv))
	c.do(http.MethodPost, "/api/assistant/conversations/"+conv.ID+"/messages", map[string]string{"text": "my blood pressure"}, nil)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"email": "sarah@hospital.com", "password": "x", "role": "DOCTOR",
	}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/assistant/conversations/"+conv.ID, nil, nil))

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/assistant/conversations", nil, &conv))
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/signup", map[string]string{
		"name": "Dr. New", "email": "new@x.com", "password": "password123", "role": "DOCTOR",
	}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/assistant/conversations/"+conv.ID, nil, nil))
}
