package postgres

import (
	"net/http"

	"website/model/model"
	U "website/util"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

func (pg *Postgres) CreateTodoEntry(entry *model.TodoEntry) (*model.TodoEntry, int) {
	if entry == nil || entry.Title == "" || entry.Description == "" {
		return nil, http.StatusBadRequest
	}

	transTime := gorm.NowFunc()
	entry.ID = ""
	entry.CreatedAt = transTime
	entry.UpdatedAt = transTime

	if err := pg.db.Create(entry).Error; err != nil {
		log.WithError(err).Error("Insert into todo_list table failed.")
		return nil, http.StatusInternalServerError
	}
	return entry, http.StatusCreated
}

func (pg *Postgres) GetTodoEntry(id string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	var entry model.TodoEntry
	if err := pg.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("GetTodoEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusFound
}

func (pg *Postgres) GetTodoEntries(limit, offset int) ([]model.TodoEntry, int) {
	entries := make([]model.TodoEntry, 0)
	if limit <= 0 || offset < 0 {
		return entries, http.StatusBadRequest
	}

	err := pg.db.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		log.WithError(err).Error("GetTodoEntries Failed.")
		return entries, http.StatusInternalServerError
	}
	return entries, http.StatusFound
}

func (pg *Postgres) UpdateTodoEntry(id string, title, description *string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) || (title == nil && description == nil) {
		return nil, http.StatusBadRequest
	}

	var entry model.TodoEntry
	err := pg.db.Raw(`UPDATE todo_list SET title = COALESCE(?, title), description = COALESCE(?, description),
		updated_at = ? WHERE id = ? RETURNING *`, title, description, gorm.NowFunc(), id).Scan(&entry).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("UpdateTodoEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusAccepted
}

func (pg *Postgres) DeleteTodoEntry(id string) (*model.TodoEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	var entry model.TodoEntry
	err := pg.db.Raw(`DELETE FROM todo_list WHERE id = ? RETURNING *`, id).Scan(&entry).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("DeleteTodoEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusAccepted
}
