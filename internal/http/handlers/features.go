package handlers

import (
	"net/http"

	"nandighosh/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/features/:id/highlight
func (h *Handler) HighlightFeature(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	svc := services.FeatureService{Site: h.Site, Notifier: sess.Notifier, Now: h.Now}
	n, err := svc.Highlight(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": n})
}
