package handlers

import (
	"net/http"
	"strings"

	"nandighosh/internal/booking"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/http/middleware"
	"nandighosh/internal/services"
	"nandighosh/internal/utils"

	"github.com/gin-gonic/gin"
)

type bookingDraftResponse struct {
	Route      string `json:"route"`
	Date       string `json:"date"`
	Passengers string `json:"passengers"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type bookingSummaryResponse struct {
	RouteID      string `json:"route_id"`
	Route        string `json:"route"`
	Date         string `json:"date"`
	DateDisplay  string `json:"date_display"`
	Passengers   int    `json:"passengers"`
	Name         string `json:"name"`
	PricePerSeat int64  `json:"price_per_seat"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

type bookingResponse struct {
	State       booking.State           `json:"state"`
	Step        int                     `json:"step"`
	Open        bool                    `json:"open"`
	Description string                  `json:"description"`
	Submitting  bool                    `json:"submitting"`
	CanContinue bool                    `json:"can_continue"`
	CanReview   bool                    `json:"can_review"`
	Draft       bookingDraftResponse    `json:"draft"`
	MinDate     string                  `json:"min_date"`
	Summary     *bookingSummaryResponse `json:"summary,omitempty"`
}

func toBookingResponse(v booking.View) bookingResponse {
	d := v.Draft
	out := bookingResponse{
		State:       v.State,
		Step:        v.Step,
		Open:        v.Open,
		Description: v.Description,
		Submitting:  v.Submitting,
		CanContinue: v.CanContinue,
		CanReview:   v.CanReview,
		Draft: bookingDraftResponse{
			Route:      d.Route,
			Passengers: d.Passengers,
			Name:       d.Name,
			Phone:      d.Phone,
			Email:      d.Email,
		},
		MinDate: utils.FormatDate(v.MinDate),
	}
	if d.Date != nil {
		out.Draft.Date = utils.FormatDate(*d.Date)
	}
	if s := v.Summary; s != nil {
		out.Summary = &bookingSummaryResponse{
			RouteID:      s.Route.ID,
			Route:        s.Route.Name,
			Date:         utils.FormatDate(s.Date),
			DateDisplay:  s.DateDisplay,
			Passengers:   s.Passengers,
			Name:         s.Name,
			PricePerSeat: s.Route.Price,
			Total:        s.Total,
			TotalDisplay: s.TotalDisplay,
		}
	}
	return out
}

func respondBooking(c *gin.Context, sess *services.Session, err error) {
	view := toBookingResponse(sess.Wizard.View())
	if err != nil {
		respondDomainError(c, err, gin.H{"booking": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": view})
}

// GET /api/booking
func (h *Handler) GetBooking(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	respondBooking(c, sess, nil)
}

type openBookingRequest struct {
	RouteID string `json:"route_id"`
}

// POST /api/booking/open
func (h *Handler) OpenBooking(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req openBookingRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	var err error
	if strings.TrimSpace(req.RouteID) == "" {
		err = sess.Wizard.OpenBlank()
	} else {
		err = sess.Wizard.Open(req.RouteID)
	}
	respondBooking(c, sess, err)
}

// PATCH /api/booking/draft
//
// The body maps field names to values. Fields are applied in form order
// and the first rejected one stops the update.
func (h *Handler) UpdateBookingDraft(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req map[string]string
	if !BindJSONOrError(c, &req) {
		return
	}
	for key := range req {
		if !isBookingField(key) {
			respondBooking(c, sess, domain.ValidationError{Field: key, Msg: "unknown field"})
			return
		}
	}
	for _, field := range booking.Fields {
		value, present := req[field]
		if !present {
			continue
		}
		if err := sess.Wizard.Apply(field, value); err != nil {
			respondBooking(c, sess, err)
			return
		}
	}
	respondBooking(c, sess, nil)
}

func isBookingField(name string) bool {
	for _, f := range booking.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// POST /api/booking/continue
func (h *Handler) ContinueBooking(c *gin.Context) {
	h.bookingStep(c, (*booking.Wizard).Continue)
}

// POST /api/booking/back
func (h *Handler) BackBooking(c *gin.Context) {
	h.bookingStep(c, (*booking.Wizard).Back)
}

// POST /api/booking/review
func (h *Handler) ReviewBooking(c *gin.Context) {
	h.bookingStep(c, (*booking.Wizard).Review)
}

// POST /api/booking/dismiss
func (h *Handler) DismissBooking(c *gin.Context) {
	h.bookingStep(c, (*booking.Wizard).Dismiss)
}

func (h *Handler) bookingStep(c *gin.Context, step func(*booking.Wizard) error) {
	sess, ok := session(c)
	if !ok {
		return
	}
	respondBooking(c, sess, step(sess.Wizard))
}

// POST /api/booking/confirm
//
// Blocks for the submission delay. The response carries the closed
// wizard and the confirmation, or the review step again on failure.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	conf, err := sess.Wizard.Confirm(c.Request.Context())
	if err != nil {
		respondBooking(c, sess, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "booking", "confirm", "reference="+conf.Reference+" route="+conf.RouteID)
	c.JSON(http.StatusOK, gin.H{
		"booking":      toBookingResponse(sess.Wizard.View()),
		"confirmation": conf,
		"receipt_url":  "/api/booking/receipt",
	})
}

// GET /api/booking/receipt
func (h *Handler) BookingReceipt(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	conf, found := sess.Wizard.LastConfirmation()
	if !found {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking confirmation"})
		return
	}
	pdfBytes, filename, err := h.docs(c).BuildReceipt(conf)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{
		CompanyName: h.Site.Brand.Name,
		SupportLine: h.Site.Contact.PhoneDisplay,
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/routes
func (h *Handler) Routes(c *gin.Context) {
	routes := h.Catalog.All()
	type routeResponse struct {
		models.RouteOffering
		PriceDisplay string `json:"price_display"`
	}
	out := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeResponse{RouteOffering: r, PriceDisplay: utils.FormatRupee(r.Price)})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
