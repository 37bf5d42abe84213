package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/submit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	items []models.Notification
}

func (r *recorder) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.items...)
}

// countingSubmitter records calls and answers with err.
type countingSubmitter struct {
	mu    sync.Mutex
	calls []models.ContactDraft
	err   error
}

func (c *countingSubmitter) Submit(_ context.Context, msg models.ContactDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, msg)
	return c.err
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
}

func validMessage() models.ContactDraft {
	return models.ContactDraft{
		Name:    "Asha Patra",
		Phone:   "9000000000",
		Email:   "asha@example.com",
		Message: "Do you run a night bus to Sambalpur?",
	}
}

func TestSubmitValidMessage(t *testing.T) {
	fire := make(chan time.Time)
	delays := make(chan time.Duration, 1)
	sim := submit.Simulated[models.ContactDraft]{
		Delay: 1500 * time.Millisecond,
		After: func(d time.Duration) <-chan time.Time {
			delays <- d
			return fire
		},
	}
	rec := &recorder{}
	form := NewForm(sim, rec, fixedNow)

	done := make(chan error, 1)
	go func() { done <- form.Submit(context.Background(), validMessage()) }()

	assert.Equal(t, 1500*time.Millisecond, <-delays)
	assert.True(t, form.Busy())
	assert.True(t, domain.IsConflict(form.Update(FieldName, "Other")))
	assert.True(t, domain.IsConflict(form.Submit(context.Background(), validMessage())))

	fire <- fixedNow()
	require.NoError(t, <-done)

	assert.Equal(t, StateIdle, form.State())
	assert.True(t, form.Draft().IsEmpty())
	notes := rec.All()
	require.Len(t, notes, 1)
	assert.Equal(t, "Message Sent! ✅", notes[0].Title)
	assert.Equal(t, "Thank you for contacting us. We'll get back to you within 24 hours.", notes[0].Description)
	assert.Equal(t, fixedNow(), notes[0].CreatedAt)
}

func TestSubmitMissingFieldSkipsSubmitter(t *testing.T) {
	fields := []string{FieldName, FieldPhone, FieldEmail, FieldMessage}
	for _, missing := range fields {
		t.Run(missing, func(t *testing.T) {
			sub := &countingSubmitter{}
			rec := &recorder{}
			form := NewForm(sub, rec, fixedNow)

			msg := validMessage()
			switch missing {
			case FieldName:
				msg.Name = ""
			case FieldPhone:
				msg.Phone = "  "
			case FieldEmail:
				msg.Email = ""
			case FieldMessage:
				msg.Message = "\n"
			}

			err := form.Submit(context.Background(), msg)
			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, missing, verr.Field)
			assert.Empty(t, sub.calls)
			assert.Empty(t, rec.All())
			assert.Equal(t, StateIdle, form.State())
			assert.Equal(t, msg, form.Draft(), "draft keeps what was typed")
		})
	}
}

func TestSubmitInvalidEmail(t *testing.T) {
	sub := &countingSubmitter{}
	form := NewForm(sub, nil, fixedNow)
	msg := validMessage()
	msg.Email = "asha-at-example"

	err := form.Submit(context.Background(), msg)
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldEmail, verr.Field)
	assert.Equal(t, "must be a valid email address", verr.Msg)
	assert.Empty(t, sub.calls)
}

func TestSubmitTrimsFields(t *testing.T) {
	sub := &countingSubmitter{}
	form := NewForm(sub, nil, fixedNow)
	msg := validMessage()
	msg.Name = "  Asha \t  Patra "

	require.NoError(t, form.Submit(context.Background(), msg))
	require.Len(t, sub.calls, 1)
	assert.Equal(t, "Asha Patra", sub.calls[0].Name)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	sub := &countingSubmitter{err: errors.New("smtp down")}
	rec := &recorder{}
	form := NewForm(sub, rec, fixedNow)

	err := form.Submit(context.Background(), validMessage())
	assert.True(t, domain.IsSubmission(err))
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, validMessage(), form.Draft())

	notes := rec.All()
	require.Len(t, notes, 1)
	assert.Equal(t, models.VariantDestructive, notes[0].Variant)
}

func TestUpdateAndSubmitDraft(t *testing.T) {
	sub := &countingSubmitter{}
	form := NewForm(sub, nil, fixedNow)
	msg := validMessage()

	require.NoError(t, form.Update(FieldName, msg.Name))
	require.NoError(t, form.Update(FieldPhone, msg.Phone))
	require.NoError(t, form.Update(" Email ", msg.Email))
	require.NoError(t, form.Update(FieldMessage, msg.Message))
	assert.True(t, domain.IsValidation(form.Update("subject", "x")))
	assert.Equal(t, msg, form.Draft())

	require.NoError(t, form.SubmitDraft(context.Background()))
	assert.Equal(t, []models.ContactDraft{msg}, sub.calls)
	assert.True(t, form.Draft().IsEmpty())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validMessage()))
	err := Validate(models.ContactDraft{})
	var verr domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldName, verr.Field)
	assert.Equal(t, "required", verr.Msg)
}
