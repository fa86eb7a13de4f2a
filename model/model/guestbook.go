package model

import (
	"strings"
	"time"
)

type GuestbookEntry struct {
	ID        string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (GuestbookEntry) TableName() string {
	return "guestbook"
}

type CreateGuestbookEntryInput struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func (input *CreateGuestbookEntryInput) Normalize() {
	trim(&input.Name)
	trim(&input.Message)
}

type UpdateGuestbookEntryInput struct {
	ID      string  `json:"id" validate:"required,uuid"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Message *string `json:"message" validate:"omitempty,min=1,max=1000"`
}

func (input *UpdateGuestbookEntryInput) Normalize() {
	trim(&input.ID)
	if input.Name != nil {
		trim(input.Name)
	}
	if input.Message != nil {
		trim(input.Message)
	}
}

func (input *UpdateGuestbookEntryInput) Validate() error {
	errs := FieldErrors{}
	if input.Name == nil && input.Message == nil {
		errs["name"] = "at least one of name, message is required"
	}
	requireNonEmpty(errs, "name", input.Name)
	requireNonEmpty(errs, "message", input.Message)
	return errs.ErrorOrNil()
}

func trim(value *string) {
	*value = strings.TrimSpace(*value)
}
