package api

import (
	"html/template"
	stdhttp "net/http"

	intconfig "nandighosh/internal/config"
	"nandighosh/internal/content"
	h "nandighosh/internal/http/handlers"
	"nandighosh/internal/http/middleware"
	"nandighosh/internal/services"
	"nandighosh/internal/utils"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is what the router wires into handlers and middleware.
type Deps struct {
	Env      intconfig.Env
	Log      *zerolog.Logger
	Handler  *h.Handler
	Sessions *services.SessionService
	Tokens   services.SessionTokens

	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool
}

// PageTemplates parses the embedded page templates.
func PageTemplates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{"rupee": utils.FormatRupee}).
		ParseFS(content.Templates, "templates/*.tmpl")
}

func NewRouter(d Deps) (*gin.Engine, error) {
	log := d.Log
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(), middleware.CORS(d.Env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	tmpl, err := PageTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	if d.Env.EnablePprof {
		pprof.Register(r)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	hd := d.Handler
	sess := middleware.Session(d.Sessions, d.Tokens, d.SecureCookies)

	r.GET("/", sess, hd.Index)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/endpoints", h.Endpoints)
		api.GET("/routes", hd.Routes)

		withSession := api.Group("", sess)

		// Booking wizard
		bookings := withSession.Group("/booking")
		bookings.GET("", hd.GetBooking)
		bookings.POST("/open", hd.OpenBooking)
		bookings.PATCH("/draft", hd.UpdateBookingDraft)
		bookings.POST("/continue", hd.ContinueBooking)
		bookings.POST("/back", hd.BackBooking)
		bookings.POST("/review", hd.ReviewBooking)
		bookings.POST("/confirm", hd.ConfirmBooking)
		bookings.POST("/dismiss", hd.DismissBooking)
		bookings.GET("/receipt", hd.BookingReceipt)

		// Contact form
		limiter := middleware.NewRateLimiter(d.Env.ContactRatePerMinute)
		contact := withSession.Group("/contact")
		contact.GET("", hd.GetContact)
		contact.PATCH("/draft", hd.UpdateContactDraft)
		contact.POST("", limiter.Limit(), hd.SubmitContact)

		withSession.POST("/features/:id/highlight", hd.HighlightFeature)

		// Notifications
		withSession.GET("/notifications", hd.Notifications)
		withSession.GET("/notifications/ws", hd.NotificationStream)
	}

	links := r.Group("/go", sess)
	{
		links.GET("/call", hd.GoCall)
		links.GET("/whatsapp", hd.GoWhatsApp)
		links.GET("/email", hd.GoEmail)
		links.GET("/store/:store", hd.GoStore)
		links.GET("/section/:section", hd.GoSection)
	}

	h.SetRouter(r)
	return r, nil
}
