package models

import (
	"strconv"
	"strings"
	"time"
)

// BookingDraft is the uncommitted form data of an open booking wizard.
// Passengers stays string-encoded because it comes from a select box.
type BookingDraft struct {
	Route      string
	Date       *time.Time
	Passengers string
	Name       string
	Phone      string
	Email      string
}

// HasTrip reports whether route, date and passenger count are all set.
func (d BookingDraft) HasTrip() bool {
	return len(d.MissingTrip()) == 0
}

// MissingTrip lists the empty step-one fields in form order.
func (d BookingDraft) MissingTrip() []string {
	missing := []string{}
	if strings.TrimSpace(d.Route) == "" {
		missing = append(missing, "route")
	}
	if d.Date == nil {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(d.Passengers) == "" {
		missing = append(missing, "passengers")
	}
	return missing
}

// HasTraveller reports whether name, phone and email are all set.
func (d BookingDraft) HasTraveller() bool {
	return len(d.MissingTraveller()) == 0
}

// MissingTraveller lists the empty step-two fields in form order.
func (d BookingDraft) MissingTraveller() []string {
	missing := []string{}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(d.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// PassengerCount parses Passengers, returning 0 when unset or malformed.
func (d BookingDraft) PassengerCount() int {
	n, err := strconv.Atoi(strings.TrimSpace(d.Passengers))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (d BookingDraft) IsEmpty() bool {
	return d == BookingDraft{}
}

// BookingRequest is what a submitter receives once the traveller confirms.
type BookingRequest struct {
	Route      RouteOffering
	Date       time.Time
	Passengers int
	Name       string
	Phone      string
	Email      string
	Total      int64
}

// BookingConfirmation is the outcome of a successful submission.
type BookingConfirmation struct {
	Reference    string    `json:"reference"`
	RouteID      string    `json:"route_id"`
	Route        string    `json:"route"`
	Date         time.Time `json:"date"`
	Passengers   int       `json:"passengers"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PricePerSeat int64     `json:"price_per_seat"`
	Total        int64     `json:"total"`
	ConfirmedAt  time.Time `json:"confirmed_at"`
}
