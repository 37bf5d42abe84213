package handlers

import (
	"net/http"

	"nandighosh/internal/booking"
	"nandighosh/internal/content"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/utils"

	"github.com/gin-gonic/gin"
)

type pageData struct {
	Site             content.Site
	Routes           []models.RouteOffering
	RoutesSection    content.Section
	FeaturesSection  content.Section
	ContactSection   content.Section
	PassengerOptions []int
	MinDate          string
	Year             int
}

// GET /
func (h *Handler) Index(c *gin.Context) {
	now := h.now().In(h.location())
	routesSec, _ := h.Site.Section("routes")
	featuresSec, _ := h.Site.Section("features")
	contactSec, _ := h.Site.Section("contact")

	pax := make([]int, 0, booking.MaxPassengers)
	for i := 1; i <= booking.MaxPassengers; i++ {
		pax = append(pax, i)
	}

	c.HTML(http.StatusOK, "index.tmpl", pageData{
		Site:             h.Site,
		Routes:           h.Catalog.All(),
		RoutesSection:    routesSec,
		FeaturesSection:  featuresSec,
		ContactSection:   contactSec,
		PassengerOptions: pax,
		MinDate:          utils.FormatDate(utils.StartOfDay(now, h.location())),
		Year:             now.Year(),
	})
}
