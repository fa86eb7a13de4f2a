package model

import (
	"time"

	"website/model/model"

	"github.com/jinzhu/gorm/dialects/postgres"
)

// Model - Interface of all methods to be implemented by the stores.
// Methods return an http status as the error code: StatusFound and
// StatusNotFound for reads, StatusCreated for inserts, StatusAccepted for
// mutations, StatusBadRequest for invalid arguments and
// StatusInternalServerError for datastore failures.
type Model interface {
	// guestbook
	CreateGuestbookEntry(entry *model.GuestbookEntry) (*model.GuestbookEntry, int)
	GetGuestbookEntry(id string) (*model.GuestbookEntry, int)
	GetGuestbookEntries(limit, offset int) ([]model.GuestbookEntry, int)
	UpdateGuestbookEntry(id string, name, message *string) (*model.GuestbookEntry, int)
	DeleteGuestbookEntry(id string) (*model.GuestbookEntry, int)

	// todo_list
	CreateTodoEntry(entry *model.TodoEntry) (*model.TodoEntry, int)
	GetTodoEntry(id string) (*model.TodoEntry, int)
	GetTodoEntries(limit, offset int) ([]model.TodoEntry, int)
	UpdateTodoEntry(id string, title, description *string) (*model.TodoEntry, int)
	DeleteTodoEntry(id string) (*model.TodoEntry, int)

	// clarity_requests
	GetCachedClarityRequest(params model.ClarityParams, since time.Time) (*model.ClarityRequest, int)
	// ReserveClarityRequest counts every request made since `since` and,
	// while below limit, inserts a pending row stamped at `at`, atomically.
	// Returns StatusTooManyRequests once the limit is reached.
	ReserveClarityRequest(params model.ClarityParams, since, at time.Time, limit int) (*model.ClarityRequest, int)
	CompleteClarityRequest(id uint64, responseData *postgres.Jsonb) int
	ReleaseClarityRequest(id uint64) int
	CountClarityRequestsSince(since time.Time) (int, int)

	// Ping checks the datastore is reachable.
	Ping() error
}
