package handlers

import (
	"time"

	"nandighosh/internal/content"
	"nandighosh/internal/domain"
	"nandighosh/internal/http/middleware"
	"nandighosh/internal/notify"
	"nandighosh/internal/repositories"
	"nandighosh/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies shared by the page and API handlers.
// Per-visitor state comes from the session middleware.
type Handler struct {
	Site          content.Site
	Catalog       repositories.RouteCatalog
	Hub           *notify.Hub
	RedirectDelay time.Duration
	Location      *time.Location
	Now           domain.Clock
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.Local
}

// session returns the visitor session or writes a 500 when the session
// middleware did not run.
func session(c *gin.Context) (*services.Session, bool) {
	sess := middleware.GetSession(c)
	if sess == nil {
		RespondDomainError(c, domain.InternalError{Msg: "session missing"})
		return nil, false
	}
	return sess, true
}
