package handlers

import (
	"net/http"

	"nandighosh/internal/http/middleware"
	"nandighosh/internal/services"

	"github.com/gin-gonic/gin"
)

// redirectPlatform records the navigation a page action asks for so the
// handler can answer with a redirect.
type redirectPlatform struct {
	location   string
	newContext bool
}

func (p *redirectPlatform) Dial(target string) {
	p.location = target
}

func (p *redirectPlatform) OpenURL(url string, newContext bool) {
	p.location = url
	p.newContext = newContext
}

func (p *redirectPlatform) ScrollTo(anchor string) {
	p.location = "/#" + anchor
}

func (h *Handler) links(c *gin.Context, p services.Platform, n services.Notifier) services.LinksService {
	return services.LinksService{
		Site:          h.Site,
		Platform:      p,
		Notifier:      n,
		RedirectDelay: h.RedirectDelay,
		Now:           h.Now,
		RequestID:     middleware.GetRequestID(c),
	}
}

func redirect(c *gin.Context, p *redirectPlatform) {
	if p.location == "" {
		respondError(c, http.StatusInternalServerError, "internal_error", "no redirect target", nil)
		return
	}
	if p.newContext {
		c.Header("X-Link-Target", "_blank")
	}
	c.Redirect(http.StatusFound, p.location)
}

// GET /go/call
func (h *Handler) GoCall(c *gin.Context) {
	p := &redirectPlatform{}
	h.links(c, p, nil).Call()
	redirect(c, p)
}

// GET /go/whatsapp
func (h *Handler) GoWhatsApp(c *gin.Context) {
	p := &redirectPlatform{}
	h.links(c, p, nil).WhatsApp()
	redirect(c, p)
}

// GET /go/email
func (h *Handler) GoEmail(c *gin.Context) {
	p := &redirectPlatform{}
	h.links(c, p, nil).Email()
	redirect(c, p)
}

// GET /go/store/:store
//
// The "Redirecting to Store" notification goes out before the delay, so
// the page can show it while this request waits.
func (h *Handler) GoStore(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	p := &redirectPlatform{}
	if err := h.links(c, p, sess.Notifier).AppStore(c.Request.Context(), c.Param("store")); err != nil {
		RespondDomainError(c, err)
		return
	}
	redirect(c, p)
}

// GET /go/section/:section
func (h *Handler) GoSection(c *gin.Context) {
	p := &redirectPlatform{}
	if err := h.links(c, p, nil).Section(c.Param("section")); err != nil {
		RespondDomainError(c, err)
		return
	}
	redirect(c, p)
}
