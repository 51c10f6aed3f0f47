package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"foodieride-api/logger"
	"foodieride-api/models"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie that carries the session token.
const SessionCookie = "session"

const sessionKey = "session"

// LoadSession resolves the caller's token, if any, and stores the session in
// the context. It never rejects a request; gates do that.
func LoadSession(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			c.Next()
			return
		}
		s, err := m.Parse(c.Request.Context(), tokenStr)
		switch {
		case err == nil:
			c.Set(sessionKey, s)
		case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrSessionRevoked):
			// treated as anonymous
		default:
			logger.Get().Error().Err(err).Str("path", c.FullPath()).Msg("session lookup failed")
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// LoginURL is where a gate sends a caller that must log in for page.
func LoginURL(page string) string {
	return "/login?next=" + url.QueryEscape(page)
}

// RequireRole admits only sessions holding role. page names the login
// destination, which also decides the role a fresh signup gets.
//
// On a role mismatch the presented session is revoked and replaced by one
// without a role but with the same user id, so the caller can log in again
// for the other page.
func RequireRole(m *SessionManager, role models.UserRole, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": services.ErrUnauthenticated.Error(),
				"login": LoginURL(page),
			})
			return
		}
		if s.Role != role {
			token, err := m.ClearRole(c.Request.Context(), s)
			if err != nil {
				logger.Get().Error().Err(err).Uint("user_id", s.UserID).Msg("failed to clear session role")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": services.ErrStoreFailure.Error()})
				return
			}
			SetSessionCookie(c, token, m)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":         services.ErrUnauthorized.Error(),
				"required_role": role,
				"login":         LoginURL(page),
			})
			return
		}
		c.Next()
	}
}

// GetSession returns the caller's session if LoadSession found one.
func GetSession(c *gin.Context) (*Session, bool) {
	val, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := val.(*Session)
	return s, ok
}

// GetUserID extracts caller user ID from context. Only valid behind a gate.
func GetUserID(c *gin.Context) uint {
	s, _ := GetSession(c)
	return s.UserID
}

func SetSessionCookie(c *gin.Context, token string, m *SessionManager) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(m.TTL().Seconds()), "/", "", false, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
