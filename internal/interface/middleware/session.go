package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/smart-health-api/internal/application/identity"
	"github.com/oksasatya/smart-health-api/internal/domain/entity"
	"github.com/oksasatya/smart-health-api/pkg/helpers"
	"github.com/oksasatya/smart-health-api/pkg/response"
)

const (
	CtxSessionID = "sessionID"
	CtxSession   = "session"
	CtxUserID    = "userID"
	CtxRole      = "role"
)

// Session attaches the client's identity Manager to the request. Clients
// without a valid session cookie get a fresh session id.
func Session(sessions *identity.Sessions, jwt *helpers.JWTManager, cookies *helpers.CookieManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if token := cookies.Session(c); token != "" {
			if claims, err := jwt.ParseSessionToken(token); err == nil {
				sid = claims.SessionID
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			token, exp, err := jwt.GenerateSessionToken(sid)
			if err != nil {
				logger.WithError(err).Error("sign session token failed")
				response.Abort(c, http.StatusInternalServerError, "session unavailable", nil)
				return
			}
			cookies.SetSession(c, token, exp)
		}

		m, err := sessions.Open(c.Request.Context(), sid)
		if err != nil {
			logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("open session failed")
			response.Abort(c, http.StatusServiceUnavailable, "session store unavailable", nil)
			return
		}
		c.Set(CtxSessionID, sid)
		c.Set(CtxSession, m)
		if ident, ok := m.Current(); ok {
			c.Set(CtxUserID, ident.ID)
			c.Set(CtxRole, ident.Role)
		}
		c.Next()
	}
}

// SessionFrom returns the Manager set by Session.
func SessionFrom(c *gin.Context) *identity.Manager {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	m, _ := v.(*identity.Manager)
	return m
}

// CurrentIdentity returns the logged-in identity, if any.
func CurrentIdentity(c *gin.Context) (*entity.Identity, bool) {
	m := SessionFrom(c)
	if m == nil {
		return nil, false
	}
	return m.Current()
}

// RequireAuth rejects requests without a logged-in identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			response.Abort(c, http.StatusUnauthorized, "login required", nil)
			return
		}
		c.Next()
	}
}

// RequireRoles lets through only identities holding one of roles.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "login required", nil)
			return
		}
		if !allowed[ident.Role] {
			response.Abort(c, http.StatusForbidden, "not available for role "+string(ident.Role), nil)
			return
		}
		c.Next()
	}
}
