package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/assistant"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/internal/interface/middleware"
	"github.com/oksasatya/smart-health-api/pkg/response"
	"github.com/oksasatya/smart-health-api/pkg/validation"
)

// AssistantHandler exposes conversations scoped to the client session.
type AssistantHandler struct {
	Registry *assistant.Registry
	Logger   *logrus.Logger
}

func NewAssistantHandler(registry *assistant.Registry, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{Registry: registry, Logger: logger}
}

type conversationView struct {
	ID       string           `json:"id"`
	Language entity.Language  `json:"language"`
	Sending  bool             `json:"sending"`
	Messages []entity.Message `json:"messages"`
}

func viewOf(conv *assistant.Conversation) conversationView {
	return conversationView{
		ID:       conv.ID(),
		Language: conv.Language(),
		Sending:  conv.Sending(),
		Messages: conv.Messages(),
	}
}

type languageRequest struct {
	Lang string `json:"lang" binding:"required,lang"`
}

type sendRequest struct {
	Text string `json:"text"`
}

type sendView struct {
	Outcome      assistant.OutcomeKind `json:"outcome"`
	User         entity.Message        `json:"user"`
	Reply        entity.Message        `json:"reply"`
	Conversation conversationView      `json:"conversation"`
}

func owner(c *gin.Context) string { return c.GetString(middleware.CtxSessionID) }

func (h *AssistantHandler) Create(c *gin.Context) {
	conv := h.Registry.Open(c.Request.Context(), owner(c))
	response.Success(c, http.StatusCreated, viewOf(conv), "conversation started", nil)
}

func (h *AssistantHandler) Get(c *gin.Context) {
	conv, ok := h.lookup(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, viewOf(conv), "conversation", nil)
}

func (h *AssistantHandler) SetLanguage(c *gin.Context) {
	conv, ok := h.lookup(c)
	if !ok {
		return
	}
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	lang, _ := entity.ParseLanguage(req.Lang)
	conv.SetLanguage(lang)
	response.Success(c, http.StatusOK, viewOf(conv), "language updated", nil)
}

// Send answers 200 even when the model failed; the fallback reply is the
// visible result and Outcome says which one it was.
func (h *AssistantHandler) Send(c *gin.Context) {
	conv, ok := h.lookup(c)
	if !ok {
		return
	}
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	out, err := conv.Send(c.Request.Context(), req.Text)
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		response.Error[any](c, http.StatusBadRequest, "message ignored", err.Error())
		return
	case errors.Is(err, assistant.ErrSendInFlight):
		response.Error[any](c, http.StatusConflict, "message ignored", err.Error())
		return
	case err != nil:
		response.Error[any](c, http.StatusInternalServerError, "send failed", nil)
		return
	}
	response.Success(c, http.StatusOK, sendView{
		Outcome:      out.Kind,
		User:         out.User,
		Reply:        out.Reply,
		Conversation: viewOf(conv),
	}, "message sent", nil)
}

func (h *AssistantHandler) Close(c *gin.Context) {
	if err := h.Registry.Close(owner(c), c.Param("id")); err != nil {
		response.Error[any](c, http.StatusNotFound, "conversation not found", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"closed": true}, "conversation closed", nil)
}

func (h *AssistantHandler) lookup(c *gin.Context) (*assistant.Conversation, bool) {
	conv, err := h.Registry.Get(owner(c), c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "conversation not found", nil)
		return nil, false
	}
	return conv, true
}
