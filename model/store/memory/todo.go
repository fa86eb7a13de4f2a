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

func copyTodoEntry(entry model.TodoEntry) *model.TodoEntry {
	var out model.TodoEntry
	copier.Copy(&out, &entry)
	return &out
}

func (m *Memory) CreateTodoEntry(entry *model.TodoEntry) (*model.TodoEntry, int) {
	if entry == nil || entry.Title == "" || entry.Description == "" {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	transTime := m.now()
	stored := model.TodoEntry{
		ID:          U.GetUUID(),
		Title:       entry.Title,
		Description: entry.Description,
		CreatedAt:   transTime,
		UpdatedAt:   transTime,
	}
	m.todoList[stored.ID] = stored
	return copyTodoEntry(stored), http.StatusCreated
}

func (m *Memory) GetTodoEntry(id string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.todoList[id]
	if !exists {
		return nil, http.StatusNotFound
	}
	return copyTodoEntry(entry), http.StatusFound
}

func (m *Memory) GetTodoEntries(limit, offset int) ([]model.TodoEntry, int) {
	entries := make([]model.TodoEntry, 0)
	if limit <= 0 || offset < 0 {
		return entries, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, entry := range m.todoList {
		entries = append(entries, entry)
	}
	sort.Slice(entries, newestFirst(
		func(i int) time.Time { return entries[i].CreatedAt },
		func(i int) string { return entries[i].ID },
	))

	start, end := window(len(entries), limit, offset)
	return entries[start:end], http.StatusFound
}

func (m *Memory) UpdateTodoEntry(id string, title, description *string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) || (title == nil && description == nil) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.todoList[id]
	if !exists {
		return nil, http.StatusNotFound
	}

	patch := model.TodoEntry{ID: stored.ID, CreatedAt: stored.CreatedAt, UpdatedAt: m.now()}
	if title != nil {
		patch.Title = *title
	}
	if description != nil {
		patch.Description = *description
	}
	if err := mergo.Merge(&stored, patch, mergo.WithOverride); err != nil {
		log.WithError(err).WithField("id", id).Error("Failed to merge todo entry.")
		return nil, http.StatusInternalServerError
	}

	m.todoList[id] = stored
	return copyTodoEntry(stored), http.StatusAccepted
}

func (m *Memory) DeleteTodoEntry(id string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.todoList[id]
	if !exists {
		return nil, http.StatusNotFound
	}
	delete(m.todoList, id)
	return copyTodoEntry(entry), http.StatusAccepted
}
