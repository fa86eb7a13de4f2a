package memory

import (
	"net/http"
	"sort"
	"time"

	"website/model/model"
	U "website/util"

	"github.com/imdario/mergo"
	"github.com/jinzhu/copier"
	log "github.com/sirupsen/logrus"
)

func copyGuestbookEntry(entry model.GuestbookEntry) *model.GuestbookEntry {
	var out model.GuestbookEntry
	copier.Copy(&out, &entry)
	return &out
}

func (m *Memory) CreateGuestbookEntry(entry *model.GuestbookEntry) (*model.GuestbookEntry, int) {
	if entry == nil || entry.Name == "" || entry.Message == "" {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	transTime := m.now()
	stored := model.GuestbookEntry{
		ID:        U.GetUUID(),
		Name:      entry.Name,
		Message:   entry.Message,
		CreatedAt: transTime,
		UpdatedAt: transTime,
	}
	m.guestbook[stored.ID] = stored
	return copyGuestbookEntry(stored), http.StatusCreated
}

func (m *Memory) GetGuestbookEntry(id string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.guestbook[id]
	if !exists {
		return nil, http.StatusNotFound
	}
	return copyGuestbookEntry(entry), http.StatusFound
}

func (m *Memory) GetGuestbookEntries(limit, offset int) ([]model.GuestbookEntry, int) {
	entries := make([]model.GuestbookEntry, 0)
	if limit <= 0 || offset < 0 {
		return entries, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, entry := range m.guestbook {
		entries = append(entries, entry)
	}
	sort.Slice(entries, newestFirst(
		func(i int) time.Time { return entries[i].CreatedAt },
		func(i int) string { return entries[i].ID },
	))

	start, end := window(len(entries), limit, offset)
	return entries[start:end], http.StatusFound
}

func (m *Memory) UpdateGuestbookEntry(id string, name, message *string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) || (name == nil && message == nil) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.guestbook[id]
	if !exists {
		return nil, http.StatusNotFound
	}

	patch := model.GuestbookEntry{ID: stored.ID, CreatedAt: stored.CreatedAt, UpdatedAt: m.now()}
	if name != nil {
		patch.Name = *name
	}
	if message != nil {
		patch.Message = *message
	}
	if err := mergo.Merge(&stored, patch, mergo.WithOverride); err != nil {
		log.WithError(err).WithField("id", id).Error("Failed to merge guestbook entry.")
		return nil, http.StatusInternalServerError
	}

	m.guestbook[id] = stored
	return copyGuestbookEntry(stored), http.StatusAccepted
}

func (m *Memory) DeleteGuestbookEntry(id string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.guestbook[id]
	if !exists {
		return nil, http.StatusNotFound
	}
	delete(m.guestbook, id)
	return copyGuestbookEntry(entry), http.StatusAccepted
}
