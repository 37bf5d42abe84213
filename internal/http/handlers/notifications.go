package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/notifications drains the session feed.
func (h *Handler) Notifications(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": sess.Feed.Drain()})
}

// GET /api/notifications/ws streams notifications as they happen.
func (h *Handler) NotificationStream(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	if h.Hub == nil {
		respondError(c, http.StatusServiceUnavailable, "stream_disabled", "notification stream not available", nil)
		return
	}
	// The upgrader writes its own response on failure. Pending
	// notifications go out before the live stream.
	_ = h.Hub.Serve(c.Writer, c.Request, sess.ID, sess.Feed)
}
