package model

import "time"

type TodoEntry struct {
	ID          string    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (TodoEntry) TableName() string {
	return "todo_list"
}

type CreateTodoEntryInput struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=1000"`
}

func (input *CreateTodoEntryInput) Normalize() {
	trim(&input.Title)
	trim(&input.Description)
}

type UpdateTodoEntryInput struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
}

func (input *UpdateTodoEntryInput) Normalize() {
	trim(&input.ID)
	if input.Title != nil {
		trim(input.Title)
	}
	if input.Description != nil {
		trim(input.Description)
	}
}

func (input *UpdateTodoEntryInput) Validate() error {
	errs := FieldErrors{}
	if input.Title == nil && input.Description == nil {
		errs["title"] = "at least one of title, description is required"
	}
	requireNonEmpty(errs, "title", input.Title)
	requireNonEmpty(errs, "description", input.Description)
	return errs.ErrorOrNil()
}
