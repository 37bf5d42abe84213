package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/utils"

	"github.com/google/uuid"
)

// MaxPassengers is the largest party the passenger select offers.
const MaxPassengers = 4

// Draft field names accepted by Apply.
const (
	FieldRoute      = "route"
	FieldDate       = "date"
	FieldPassengers = "passengers"
	FieldName       = "name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
)

// Fields lists the draft fields in form order.
var Fields = []string{FieldRoute, FieldDate, FieldPassengers, FieldName, FieldPhone, FieldEmail}

// Catalog resolves routes by id (route cards) and by display name (the
// route select and the stored draft).
type Catalog interface {
	ByID(id string) (models.RouteOffering, bool)
	ByName(name string) (models.RouteOffering, bool)
}

// Submitter delivers a confirmed booking.
type Submitter interface {
	Submit(ctx context.Context, req models.BookingRequest) error
}

// Notifier receives the toasts the wizard emits.
type Notifier interface {
	Notify(n models.Notification)
}

type discardNotifier struct{}

func (discardNotifier) Notify(models.Notification) {}

type Options struct {
	Catalog   Catalog
	Submitter Submitter
	Notifier  Notifier
	Now       domain.Clock
	Location  *time.Location

	// NewReference returns the booking reference for a confirmation.
	NewReference func() string
}

// Wizard is the booking dialog state machine for one visitor. It is safe
// for concurrent use; the submission runs without holding the lock while
// the state is StateSubmitting, which blocks every other mutation.
type Wizard struct {
	catalog   Catalog
	submitter Submitter
	notifier  Notifier
	now       domain.Clock
	loc       *time.Location
	newRef    func() string

	mu    sync.Mutex
	state State
	draft models.BookingDraft
	last  *models.BookingConfirmation
}

func NewWizard(opts Options) *Wizard {
	w := &Wizard{
		catalog:   opts.Catalog,
		submitter: opts.Submitter,
		notifier:  opts.Notifier,
		now:       opts.Now,
		loc:       opts.Location,
		newRef:    opts.NewReference,
		state:     StateClosed,
	}
	if w.notifier == nil {
		w.notifier = discardNotifier{}
	}
	if w.now == nil {
		w.now = domain.SystemClock
	}
	if w.loc == nil {
		w.loc = time.Local
	}
	if w.newRef == nil {
		w.newRef = NewReference
	}
	return w
}

// NewReference returns a short upper-case booking reference such as "NB-3F2A9C1D".
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "NB-" + strings.ToUpper(id[:8])
}

// fire applies ev or reports it as a conflict with the current state.
// Callers hold w.mu.
func (w *Wizard) fire(ev Event) error {
	next, ok := Next(w.state, ev)
	if !ok {
		return domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot %s while %s", ev, w.state),
		}
	}
	w.state = next
	return nil
}

// editable rejects edits of fields that belong to a step not on screen.
func (w *Wizard) editable(step State, field string) error {
	if w.state != step {
		return domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("%s cannot be edited while %s", field, w.state),
		}
	}
	return nil
}

// Open pre-fills the route of routeID and shows step 1. An unknown id
// leaves the wizard untouched.
func (w *Wizard) Open(routeID string) error {
	route, ok := w.catalog.ByID(routeID)
	if !ok {
		return domain.NotFoundError{Resource: fmt.Sprintf("route %q", strings.TrimSpace(routeID))}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fire(EventOpen); err != nil {
		return err
	}
	w.draft.Route = route.Name
	return nil
}

// OpenBlank shows step 1 without choosing a route, as the hero
// "Book Your Seat" button does.
func (w *Wizard) OpenBlank() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fire(EventOpen)
}

func (w *Wizard) SetRoute(name string) error {
	route, ok := w.catalog.ByName(name)
	if !ok {
		return domain.ValidationError{Field: FieldRoute, Msg: "unknown route"}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StateSelectTrip, FieldRoute); err != nil {
		return err
	}
	w.draft.Route = route.Name
	return nil
}

// SelectableDate reports whether the date picker accepts d: today and
// later days in the service time zone.
func (w *Wizard) SelectableDate(d time.Time) bool {
	return !utils.StartOfDay(d, w.loc).Before(w.MinDate())
}

// MinDate is the earliest selectable travel day.
func (w *Wizard) MinDate() time.Time {
	return utils.StartOfDay(w.now(), w.loc)
}

func (w *Wizard) SetDate(d time.Time) error {
	if !w.SelectableDate(d) {
		return domain.ValidationError{Field: FieldDate, Msg: "travel date cannot be in the past"}
	}
	day := utils.StartOfDay(d, w.loc)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StateSelectTrip, FieldDate); err != nil {
		return err
	}
	w.draft.Date = &day
	return nil
}

func (w *Wizard) SetPassengers(count string) error {
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 1 || n > MaxPassengers {
		return domain.ValidationError{
			Field: FieldPassengers,
			Msg:   fmt.Sprintf("must be between 1 and %d", MaxPassengers),
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StateSelectTrip, FieldPassengers); err != nil {
		return err
	}
	w.draft.Passengers = strconv.Itoa(n)
	return nil
}

func (w *Wizard) SetName(name string) error {
	return w.setTraveller(FieldName, name)
}

func (w *Wizard) SetPhone(phone string) error {
	return w.setTraveller(FieldPhone, phone)
}

func (w *Wizard) SetEmail(email string) error {
	return w.setTraveller(FieldEmail, email)
}

func (w *Wizard) setTraveller(field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(StatePassengerInfo, field); err != nil {
		return err
	}
	switch field {
	case FieldName:
		w.draft.Name = value
	case FieldPhone:
		w.draft.Phone = value
	case FieldEmail:
		w.draft.Email = value
	}
	return nil
}

// Apply updates one draft field by name. Dates use YYYY-MM-DD.
func (w *Wizard) Apply(field, value string) error {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldRoute:
		return w.SetRoute(value)
	case FieldDate:
		d, err := utils.ParseDate(value, w.loc)
		if err != nil {
			return domain.ValidationError{Field: FieldDate, Msg: "expected YYYY-MM-DD", Err: err}
		}
		return w.SetDate(d)
	case FieldPassengers:
		return w.SetPassengers(value)
	case FieldName:
		return w.SetName(value)
	case FieldPhone:
		return w.SetPhone(value)
	case FieldEmail:
		return w.SetEmail(value)
	}
	return domain.ValidationError{Field: field, Msg: "unknown field"}
}

// CanContinue is the step 1 guard: the dialog is on step 1 and the trip
// fields are filled.
func (w *Wizard) CanContinue() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canContinue()
}

// CanReview is the step 2 guard.
func (w *Wizard) CanReview() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canReview()
}

func (w *Wizard) canContinue() bool {
	return CanTransition(w.state, EventContinue) && w.draft.HasTrip()
}

func (w *Wizard) canReview() bool {
	return CanTransition(w.state, EventReview) && w.draft.HasTraveller()
}

// Continue moves from step 1 to step 2.
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSelectTrip && !w.draft.HasTrip() {
		return domain.ValidationError{
			Field: strings.Join(w.draft.MissingTrip(), ","),
			Msg:   "required",
		}
	}
	return w.fire(EventContinue)
}

// Back returns to the previous step, keeping every field.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fire(EventBack)
}

// Review moves from step 2 to the review step.
func (w *Wizard) Review() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StatePassengerInfo && !w.draft.HasTraveller() {
		return domain.ValidationError{
			Field: strings.Join(w.draft.MissingTraveller(), ","),
			Msg:   "required",
		}
	}
	return w.fire(EventReview)
}

// Dismiss closes the dialog from any state. The draft is kept for the
// next open; only a successful submission clears it. Dismissal is refused
// while a submission is in flight.
func (w *Wizard) Dismiss() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateClosed {
		return nil
	}
	return w.fire(EventDismiss)
}

// Confirm submits the reviewed booking. On success the dialog closes, the
// draft is cleared and the confirmation is returned. On failure the
// wizard goes back to the review step with the draft intact.
func (w *Wizard) Confirm(ctx context.Context) (models.BookingConfirmation, error) {
	w.mu.Lock()
	if err := w.fire(EventConfirm); err != nil {
		w.mu.Unlock()
		return models.BookingConfirmation{}, err
	}
	req, err := w.request()
	if err != nil {
		w.state = StateReview
		w.mu.Unlock()
		return models.BookingConfirmation{}, err
	}
	w.mu.Unlock()

	submitErr := w.submitter.Submit(ctx, req)

	w.mu.Lock()
	if submitErr != nil {
		_ = w.fire(EventFail)
		w.mu.Unlock()
		w.notifier.Notify(models.Notification{
			Title:       "Booking Failed",
			Description: "We could not confirm your seat. Please try again.",
			Variant:     models.VariantDestructive,
			CreatedAt:   w.now(),
		})
		return models.BookingConfirmation{}, domain.SubmissionError{Target: "booking", Err: submitErr}
	}

	_ = w.fire(EventSucceed)
	conf := models.BookingConfirmation{
		Reference:    w.newRef(),
		RouteID:      req.Route.ID,
		Route:        req.Route.Name,
		Date:         req.Date,
		Passengers:   req.Passengers,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PricePerSeat: req.Route.Price,
		Total:        req.Total,
		ConfirmedAt:  w.now(),
	}
	w.last = &conf
	w.draft = models.BookingDraft{}
	w.mu.Unlock()

	desc := fmt.Sprintf("Your seat has been booked for %s. Confirmation details sent to %s", conf.Route, conf.Email)
	w.notifier.Notify(models.Notification{
		Title:       "Booking Confirmed! 🎉",
		Description: desc,
		Variant:     models.VariantDefault,
		CreatedAt:   conf.ConfirmedAt,
	})
	return conf, nil
}

// request builds the submission payload from the draft. Callers hold w.mu.
func (w *Wizard) request() (models.BookingRequest, error) {
	d := w.draft
	if !d.HasTrip() || !d.HasTraveller() {
		missing := append(d.MissingTrip(), d.MissingTraveller()...)
		return models.BookingRequest{}, domain.ValidationError{Field: strings.Join(missing, ","), Msg: "required"}
	}
	route, ok := w.catalog.ByName(d.Route)
	if !ok {
		return models.BookingRequest{}, domain.ValidationError{Field: FieldRoute, Msg: "unknown route"}
	}
	pax := d.PassengerCount()
	return models.BookingRequest{
		Route:      route,
		Date:       *d.Date,
		Passengers: pax,
		Name:       strings.TrimSpace(d.Name),
		Phone:      strings.TrimSpace(d.Phone),
		Email:      strings.TrimSpace(d.Email),
		Total:      Quote(route, pax),
	}, nil
}

// Quote is the amount due: the per-seat price times the passenger count.
func Quote(route models.RouteOffering, passengers int) int64 {
	if passengers < 0 {
		passengers = 0
	}
	return route.Price * int64(passengers)
}

// Summary is the review step content.
type Summary struct {
	Route        models.RouteOffering
	Date         time.Time
	DateDisplay  string
	Passengers   int
	Name         string
	Total        int64
	TotalDisplay string
}

// View is a consistent snapshot of the wizard for rendering.
type View struct {
	State       State
	Step        int
	Open        bool
	Description string
	Submitting  bool
	CanContinue bool
	CanReview   bool
	Draft       models.BookingDraft
	MinDate     time.Time

	// Summary is set on the review step.
	Summary *Summary
}

func (w *Wizard) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	draft := w.draft
	if draft.Date != nil {
		d := *draft.Date
		draft.Date = &d
	}
	v := View{
		State:       w.state,
		Step:        w.state.Step(),
		Open:        w.state.Open(),
		Description: w.state.Description(),
		Submitting:  w.state == StateSubmitting,
		CanContinue: w.canContinue(),
		CanReview:   w.canReview(),
		Draft:       draft,
		MinDate:     utils.StartOfDay(w.now(), w.loc),
	}
	if v.Step == 3 {
		v.Summary = w.summary(draft)
	}
	return v
}

func (w *Wizard) summary(d models.BookingDraft) *Summary {
	route, ok := w.catalog.ByName(d.Route)
	if !ok || d.Date == nil {
		return nil
	}
	pax := d.PassengerCount()
	total := Quote(route, pax)
	return &Summary{
		Route:        route,
		Date:         *d.Date,
		DateDisplay:  utils.FormatLongDate(*d.Date),
		Passengers:   pax,
		Name:         d.Name,
		Total:        total,
		TotalDisplay: utils.FormatRupee(total),
	}
}

// State returns the current state.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Busy reports whether a submission is in flight.
func (w *Wizard) Busy() bool {
	return w.State() == StateSubmitting
}

// LastConfirmation returns the most recent successful booking.
func (w *Wizard) LastConfirmation() (models.BookingConfirmation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return models.BookingConfirmation{}, false
	}
	return *w.last, true
}
