package model

type VisitorCount struct {
	Count int `json:"count"`
}
