package postgres

import (
	"errors"

	"website/model/model"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"
)

type Postgres struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the tables and extensions the store relies on.
func (pg *Postgres) Migrate() error {
	if pg.db == nil {
		return errors.New("postgres store without db")
	}

	// gen_random_uuid() for primary keys.
	if err := pg.db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		log.WithError(err).Error("Failed to create pgcrypto extension.")
		return err
	}

	err := pg.db.AutoMigrate(
		&model.GuestbookEntry{},
		&model.TodoEntry{},
		&model.ClarityRequest{},
	).Error
	if err != nil {
		log.WithError(err).Error("Failed to migrate tables.")
		return err
	}

	err = pg.db.Model(&model.ClarityRequest{}).
		AddIndex("clarity_requests_lookup_idx", "request_date", "num_of_days").Error
	if err != nil {
		log.WithError(err).Error("Failed to create clarity_requests lookup index.")
		return err
	}

	return nil
}

func (pg *Postgres) Ping() error {
	if pg.db == nil {
		return errors.New("postgres store without db")
	}
	return pg.db.DB().Ping()
}
