package models

import (
	"strings"

	"nandighosh/internal/utils"
)

// ContactDraft is the contact form. Every field is required and the email
// must be well formed, the same rules the browser applies to the form.
type ContactDraft struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Normalized trims the single-line fields and collapses runs of spaces in
// the name. The message keeps its inner formatting and only loses
// surrounding whitespace.
func (d ContactDraft) Normalized() ContactDraft {
	return ContactDraft{
		Name:    utils.NormalizeSpace(d.Name),
		Phone:   strings.TrimSpace(d.Phone),
		Email:   strings.TrimSpace(d.Email),
		Message: strings.TrimSpace(d.Message),
	}
}

func (d ContactDraft) IsEmpty() bool {
	return d == ContactDraft{}
}
