package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/access"
	"github.com/oksasatya/smart-health-api/internal/application/assistant"
	"github.com/oksasatya/smart-health-api/internal/application/identity"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/response"
	"github.com/oksasatya/smart-health-api/pkg/validation"
)

type SessionHandler struct {
	Conversations *assistant.Registry
	Cookies       *helpers.CookieManager
	Logger        *logrus.Logger
}

func NewSessionHandler(conversations *assistant.Registry, cookies *helpers.CookieManager, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{Conversations: conversations, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,role"`
}

type sessionView struct {
	Authenticated bool             `json:"authenticated"`
	User          *entity.Identity `json:"user,omitempty"`
	Navigation    []access.NavItem `json:"navigation"`
}

func newSessionView(ident *entity.Identity) sessionView {
	if ident == nil {
		return sessionView{Navigation: []access.NavItem{}}
	}
	return sessionView{Authenticated: true, User: ident, Navigation: access.Navigation(ident.Role)}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, _ := entity.ParseRole(req.Role)
	ident, err := middleware.SessionFrom(c).Login(c.Request.Context(), req.Email, role)
	if err != nil {
		h.fail(c, "login failed", err)
		return
	}
	h.dropConversations(c)
	response.Success(c, http.StatusOK, newSessionView(ident), "login successful", nil)
}

func (h *SessionHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, _ := entity.ParseRole(req.Role)
	ident, err := middleware.SessionFrom(c).Signup(c.Request.Context(), identity.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		h.fail(c, "signup failed", err)
		return
	}
	h.dropConversations(c)
	response.Success(c, http.StatusCreated, newSessionView(ident), "account created", nil)
}

// Logout also drops the client's conversations and rotates the session
// cookie, so a blob that could not be deleted is never read again.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := middleware.SessionFrom(c).Logout(c.Request.Context()); err != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("logout left a session blob behind")
	}
	h.dropConversations(c)
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, newSessionView(nil), "logged out", nil)
}

func (h *SessionHandler) Me(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	response.Success(c, http.StatusOK, newSessionView(ident), "session", nil)
}

func (h *SessionHandler) Navigation(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)
	response.Success(c, http.StatusOK, access.Navigation(ident.Role), "navigation", nil)
}

type routeView struct {
	Path     string          `json:"path"`
	Decision access.Decision `json:"decision"`
	Redirect string          `json:"redirect,omitempty"`
}

func (h *SessionHandler) Route(c *gin.Context) {
	p := c.Query("path")
	ident, _ := middleware.CurrentIdentity(c)
	d := access.Resolve(ident, p)
	response.Success(c, http.StatusOK, routeView{Path: p, Decision: d, Redirect: d.Target()}, "route", nil)
}

// dropConversations discards the client's chats whenever the identity
// changes; a new identity starts with none.
func (h *SessionHandler) dropConversations(c *gin.Context) {
	if h.Conversations != nil {
		h.Conversations.CloseAll(c.GetString(middleware.CtxSessionID))
	}
}

func (h *SessionHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidInput), errors.Is(err, entity.ErrIdentityInvalid):
		response.Error[any](c, http.StatusBadRequest, msg, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Error[any](c, http.StatusRequestTimeout, msg, "request cancelled")
	default:
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
		response.Error[any](c, http.StatusServiceUnavailable, msg, nil)
	}
}
