package postgres

import (
	"net/http"

	"website/model/model"
	U "website/util"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

func (pg *Postgres) CreateGuestbookEntry(entry *model.GuestbookEntry) (*model.GuestbookEntry, int) {
	if entry == nil || entry.Name == "" || entry.Message == "" {
		return nil, http.StatusBadRequest
	}

	transTime := gorm.NowFunc()
	entry.ID = ""
	entry.CreatedAt = transTime
	entry.UpdatedAt = transTime

	if err := pg.db.Create(entry).Error; err != nil {
		log.WithError(err).Error("Insert into guestbook table failed.")
		return nil, http.StatusInternalServerError
	}
	return entry, http.StatusCreated
}

func (pg *Postgres) GetGuestbookEntry(id string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	var entry model.GuestbookEntry
	if err := pg.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("GetGuestbookEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusFound
}

func (pg *Postgres) GetGuestbookEntries(limit, offset int) ([]model.GuestbookEntry, int) {
	entries := make([]model.GuestbookEntry, 0)
	if limit <= 0 || offset < 0 {
		return entries, http.StatusBadRequest
	}

	err := pg.db.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		log.WithError(err).Error("GetGuestbookEntries Failed.")
		return entries, http.StatusInternalServerError
	}
	return entries, http.StatusFound
}

func (pg *Postgres) UpdateGuestbookEntry(id string, name, message *string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) || (name == nil && message == nil) {
		return nil, http.StatusBadRequest
	}

	var entry model.GuestbookEntry
	err := pg.db.Raw(`UPDATE guestbook SET name = COALESCE(?, name), message = COALESCE(?, message),
		updated_at = ? WHERE id = ? RETURNING *`, name, message, gorm.NowFunc(), id).Scan(&entry).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("UpdateGuestbookEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusAccepted
}

func (pg *Postgres) DeleteGuestbookEntry(id string) (*model.GuestbookEntry, int) {
	if !U.IsValidUUID(id) {
		return nil, http.StatusBadRequest
	}

	var entry model.GuestbookEntry
	err := pg.db.Raw(`DELETE FROM guestbook WHERE id = ? RETURNING *`, id).Scan(&entry).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		log.WithError(err).WithField("id", id).Error("DeleteGuestbookEntry Failed.")
		return nil, http.StatusInternalServerError
	}
	return &entry, http.StatusAccepted
}
