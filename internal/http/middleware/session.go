package middleware

import (
	"net/http"

	"nandighosh/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "nb_session"
	sessionKey    = "session"
)

// Session resolves the visitor session from the signed cookie. A missing,
// expired or tampered cookie starts a fresh session. The cookie is
// re-issued on every request so its expiry slides with activity.
func Session(sessions *services.SessionService, tokens services.SessionTokens, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if id, err := tokens.Parse(raw); err == nil {
				sid = id
			}
		}
		sess, created := sessions.Resolve(sid)
		if created {
			GetLogger(c).Debug().Str("label", "session").Str("session", sess.ID).Msg("session started")
		}

		token, err := tokens.Issue(sess.ID)
		if err != nil {
			GetLogger(c).Error().Err(err).Msg("session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "session unavailable",
				"code":       "internal_error",
				"message":    "session unavailable",
				"request_id": GetRequestID(c),
			})
			return
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(tokens.TTL.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session set by Session.
func GetSession(c *gin.Context) *services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*services.Session); ok {
			return s
		}
	}
	return nil
}
