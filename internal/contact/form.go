package contact

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"

	"github.com/go-playground/validator/v10"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Form field names accepted by Update.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Submitter delivers a contact message.
type Submitter interface {
	Submit(ctx context.Context, msg models.ContactDraft) error
}

// Notifier receives the toasts the form emits.
type Notifier interface {
	Notify(n models.Notification)
}

type discardNotifier struct{}

func (discardNotifier) Notify(models.Notification) {}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Form is the contact form handler for one visitor.
type Form struct {
	submitter Submitter
	notifier  Notifier
	now       domain.Clock

	mu    sync.Mutex
	state State
	draft models.ContactDraft
}

func NewForm(submitter Submitter, notifier Notifier, now domain.Clock) *Form {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	if now == nil {
		now = domain.SystemClock
	}
	return &Form{
		submitter: submitter,
		notifier:  notifier,
		now:       now,
		state:     StateIdle,
	}
}

// Update edits one field of the draft. Edits are refused while a
// submission is pending because success clears the form.
func (f *Form) Update(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return domain.ConflictError{Resource: "contact", Msg: "message is being sent"}
	}
	switch strings.ToLower(strings.TrimSpace(field)) {
	case FieldName:
		f.draft.Name = value
	case FieldPhone:
		f.draft.Phone = value
	case FieldEmail:
		f.draft.Email = value
	case FieldMessage:
		f.draft.Message = value
	default:
		return domain.ValidationError{Field: field, Msg: "unknown field"}
	}
	return nil
}

// Submit replaces the draft with msg and sends it. Invalid input is
// rejected before the submitter is called.
func (f *Form) Submit(ctx context.Context, msg models.ContactDraft) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return domain.ConflictError{Resource: "contact", Msg: "message is being sent"}
	}
	f.draft = msg
	clean := msg.Normalized()
	if err := Validate(clean); err != nil {
		f.mu.Unlock()
		return err
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	err := f.submitter.Submit(ctx, clean)

	f.mu.Lock()
	f.state = StateIdle
	if err == nil {
		f.draft = models.ContactDraft{}
	}
	f.mu.Unlock()

	if err != nil {
		f.notifier.Notify(models.Notification{
			Title:       "Message Not Sent",
			Description: "Something went wrong while sending your message. Please try again.",
			Variant:     models.VariantDestructive,
			CreatedAt:   f.now(),
		})
		return domain.SubmissionError{Target: "contact", Err: err}
	}
	f.notifier.Notify(models.Notification{
		Title:       "Message Sent! ✅",
		Description: "Thank you for contacting us. We'll get back to you within 24 hours.",
		Variant:     models.VariantDefault,
		CreatedAt:   f.now(),
	})
	return nil
}

// SubmitDraft sends the draft built with Update.
func (f *Form) SubmitDraft(ctx context.Context) error {
	return f.Submit(ctx, f.Draft())
}

func (f *Form) Draft() models.ContactDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool {
	return f.State() == StateSubmitting
}

// Validate applies the required-field rules and reports the first
// offending field.
func Validate(msg models.ContactDraft) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		text := "required"
		if fe.Tag() == "email" {
			text = "must be a valid email address"
		}
		return domain.ValidationError{Field: fe.Field(), Msg: text, Err: err}
	}
	return domain.ValidationError{Msg: "invalid contact message", Err: err}
}
