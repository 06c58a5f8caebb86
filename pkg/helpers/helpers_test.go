package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "smart-health", time.Hour)
	token, exp, err := m.GenerateSessionToken("sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestSessionTokenRejections(t *testing.T) {
	m := NewJWTManager("secret", "smart-health", time.Hour)
	token, _, err := m.GenerateSessionToken("sid-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", "smart-health", time.Hour).ParseSessionToken(token)
	assert.Error(t, err)
	_, err = NewJWTManager("secret", "someone-else", time.Hour).ParseSessionToken(token)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("secret", "smart-health", -time.Minute).GenerateSessionToken("sid-1")
	require.NoError(t, err)
	_, err = m.ParseSessionToken(expired)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "password123"))
	assert.False(t, CompareHashAndPassword(hash, "password124"))
	assert.False(t, CompareHashAndPassword("", ""))

	_, err = HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewCookie("", false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	m.SetSession(c, "tok", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = req
	assert.Equal(t, "tok", m.Session(c2))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bucket/reports/u1/r.txt", PublicURL("bucket", "reports/u1/r.txt"))
}
