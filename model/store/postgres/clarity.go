package postgres

import (
	"net/http"
	"time"

	"website/model/model"

	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
)

// Serializes quota reservations across instances sharing the database.
const clarityQuotaLockID = 7204011

func whereDimension(query *gorm.DB, column string, dimension *model.Dimension) *gorm.DB {
	if dimension == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", string(*dimension))
}

func (pg *Postgres) GetCachedClarityRequest(params model.ClarityParams, since time.Time) (*model.ClarityRequest, int) {
	logCtx := log.WithField("params", params).WithField("since", since)

	query := pg.db.Where("request_date >= ? AND num_of_days = ? AND response_data IS NOT NULL",
		since, params.NumOfDays)
	query = whereDimension(query, "dimension1", params.Dimension1)
	query = whereDimension(query, "dimension2", params.Dimension2)
	query = whereDimension(query, "dimension3", params.Dimension3)

	var request model.ClarityRequest
	if err := query.Order("request_date DESC").First(&request).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, http.StatusNotFound
		}
		logCtx.WithError(err).Error("GetCachedClarityRequest Failed.")
		return nil, http.StatusInternalServerError
	}
	return &request, http.StatusFound
}

func (pg *Postgres) ReserveClarityRequest(params model.ClarityParams, since, at time.Time,
	limit int) (*model.ClarityRequest, int) {

	logCtx := log.WithField("params", params).WithField("since", since)

	tx := pg.db.Begin()
	if tx.Error != nil {
		logCtx.WithError(tx.Error).Error("Failed to begin clarity reservation.")
		return nil, http.StatusInternalServerError
	}

	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", clarityQuotaLockID).Error; err != nil {
		tx.Rollback()
		logCtx.WithError(err).Error("Failed to lock clarity quota.")
		return nil, http.StatusInternalServerError
	}

	var count int
	err := tx.Model(&model.ClarityRequest{}).Where("request_date >= ?", since).Count(&count).Error
	if err != nil {
		tx.Rollback()
		logCtx.WithError(err).Error("Failed to count clarity requests.")
		return nil, http.StatusInternalServerError
	}
	if count >= limit {
		tx.Rollback()
		return nil, http.StatusTooManyRequests
	}

	request := &model.ClarityRequest{
		RequestDate: at,
		NumOfDays:   params.NumOfDays,
		Dimension1:  params.Dimension1,
		Dimension2:  params.Dimension2,
		Dimension3:  params.Dimension3,
	}
	if err := tx.Create(request).Error; err != nil {
		tx.Rollback()
		logCtx.WithError(err).Error("Insert into clarity_requests table failed.")
		return nil, http.StatusInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logCtx.WithError(err).Error("Failed to commit clarity reservation.")
		return nil, http.StatusInternalServerError
	}
	return request, http.StatusCreated
}

func (pg *Postgres) CompleteClarityRequest(id uint64, responseData *postgres.Jsonb) int {
	if responseData == nil {
		return http.StatusBadRequest
	}

	db := pg.db.Model(&model.ClarityRequest{}).Where("id = ?", id).
		Update("response_data", *responseData)
	if db.Error != nil {
		log.WithError(db.Error).WithField("id", id).Error("CompleteClarityRequest Failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

// ReleaseClarityRequest drops a reservation whose upstream call failed, so
// that it does not count against the quota.
func (pg *Postgres) ReleaseClarityRequest(id uint64) int {
	db := pg.db.Where("id = ? AND response_data IS NULL", id).Delete(&model.ClarityRequest{})
	if db.Error != nil {
		log.WithError(db.Error).WithField("id", id).Error("ReleaseClarityRequest Failed.")
		return http.StatusInternalServerError
	}
	if db.RowsAffected == 0 {
		return http.StatusNotFound
	}
	return http.StatusAccepted
}

func (pg *Postgres) CountClarityRequestsSince(since time.Time) (int, int) {
	var count int
	err := pg.db.Model(&model.ClarityRequest{}).Where("request_date >= ?", since).Count(&count).Error
	if err != nil {
		log.WithError(err).Error("CountClarityRequestsSince Failed.")
		return 0, http.StatusInternalServerError
	}
	return count, http.StatusFound
}
