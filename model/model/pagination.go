package model

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// ListInput is the pagination window shared by list procedures.
type ListInput struct {
	Limit  int `json:"limit" validate:"gte=1,lte=100"`
	Offset int `json:"offset" validate:"gte=0"`
}

func (input *ListInput) SetDefaults() {
	input.Limit = DefaultListLimit
	input.Offset = 0
}

// IDInput addresses a single row.
type IDInput struct {
	ID string `json:"id" validate:"required,uuid"`
}

func (input *IDInput) Normalize() {
	trim(&input.ID)
}
