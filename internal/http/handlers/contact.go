package handlers

import (
	"net/http"

	"nandighosh/internal/contact"
	"nandighosh/internal/domain"
	"nandighosh/internal/domain/models"
	"nandighosh/internal/http/middleware"
	"nandighosh/internal/services"
	"nandighosh/internal/utils"

	"github.com/gin-gonic/gin"
)

var contactFields = []string{contact.FieldName, contact.FieldPhone, contact.FieldEmail, contact.FieldMessage}

func isContactField(name string) bool {
	for _, f := range contactFields {
		if f == name {
			return true
		}
	}
	return false
}

type contactResponse struct {
	State      contact.State       `json:"state"`
	Submitting bool                `json:"submitting"`
	Draft      models.ContactDraft `json:"draft"`
}

func toContactResponse(f *contact.Form) contactResponse {
	state := f.State()
	return contactResponse{
		State:      state,
		Submitting: state == contact.StateSubmitting,
		Draft:      f.Draft(),
	}
}

func respondContact(c *gin.Context, sess *services.Session, err error) {
	view := toContactResponse(sess.Contact)
	if err != nil {
		respondDomainError(c, err, gin.H{"contact": view})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": view})
}

// GET /api/contact
func (h *Handler) GetContact(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	respondContact(c, sess, nil)
}

// PATCH /api/contact/draft
func (h *Handler) UpdateContactDraft(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var req map[string]string
	if !BindJSONOrError(c, &req) {
		return
	}
	for key := range req {
		if !isContactField(key) {
			respondContact(c, sess, domain.ValidationError{Field: key, Msg: "unknown field"})
			return
		}
	}
	for _, field := range contactFields {
		value, present := req[field]
		if !present {
			continue
		}
		if err := sess.Contact.Update(field, value); err != nil {
			respondContact(c, sess, err)
			return
		}
	}
	respondContact(c, sess, nil)
}

// POST /api/contact
//
// Sends the message in the body, or the stored draft when the body is
// empty. Blocks for the submission delay.
func (h *Handler) SubmitContact(c *gin.Context) {
	sess, ok := session(c)
	if !ok {
		return
	}
	var msg models.ContactDraft
	if c.Request.ContentLength == 0 {
		msg = sess.Contact.Draft()
	} else if !BindJSONOrError(c, &msg) {
		return
	}

	if err := sess.Contact.Submit(c.Request.Context(), msg); err != nil {
		respondContact(c, sess, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "contact", "submit", "message delivered")
	c.JSON(http.StatusOK, gin.H{
		"contact": toContactResponse(sess.Contact),
		"message": "Message Sent! ✅",
	})
}
