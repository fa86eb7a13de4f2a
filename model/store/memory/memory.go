package memory

import (
	"sync"
	"time"

	"website/model/model"
)

// Memory is a process local store used in development and tests. It
// returns copies so callers never share rows with the store.
type Memory struct {
	mutex sync.Mutex

	guestbook map[string]model.GuestbookEntry
	todoList  map[string]model.TodoEntry

	clarityRequests []model.ClarityRequest
	nextClarityID   uint64

	// NowFunc stamps created and updated times.
	NowFunc func() time.Time
}

func New() *Memory {
	return &Memory{
		guestbook: make(map[string]model.GuestbookEntry),
		todoList:  make(map[string]model.TodoEntry),
		NowFunc:   time.Now,
	}
}

func (m *Memory) now() time.Time {
	return m.NowFunc().UTC()
}

func (m *Memory) Ping() error {
	return nil
}

// newestFirst orders by creation time, then id, both descending.
func newestFirst(createdAt func(i int) time.Time, id func(i int) string) func(i, j int) bool {
	return func(i, j int) bool {
		if !createdAt(i).Equal(createdAt(j)) {
			return createdAt(i).After(createdAt(j))
		}
		return id(i) > id(j)
	}
}

func window(total, limit, offset int) (int, int) {
	if offset >= total {
		return total, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return offset, end
}
