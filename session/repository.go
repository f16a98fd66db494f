package session

import (
	"errors"
	"fmt"
	"time"

	"food-delivery-admin/config"
	"food-delivery-admin/models"

	"gorm.io/gorm"
)

// record is the single row holding the persisted session.
type record struct {
	ID        uint `gorm:"primaryKey"`
	Token     string
	UserID    string
	Firstname string
	Lastname  string
	Email     string
	Phone     string
	Role      string
	UpdatedAt time.Time
}

func (record) TableName() string { return "admin_sessions" }

const rowID = 1

// Repository persists the session in sqlite through gorm.
type Repository struct {
	db *gorm.DB
}

// OpenRepository opens (or creates) the session database at dsn.
func OpenRepository(dsn string) (*Repository, error) {
	db, err := config.OpenDB(dsn, &record{})
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Load() (*Snapshot, error) {
	var rec record
	err := r.db.First(&rec, rowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &Snapshot{
		Token: rec.Token,
		User: models.User{
			ID:        rec.UserID,
			Firstname: rec.Firstname,
			Lastname:  rec.Lastname,
			Email:     rec.Email,
			Phone:     rec.Phone,
			Role:      models.UserRole(rec.Role),
		},
	}, nil
}

func (r *Repository) Save(s Snapshot) error {
	rec := record{
		ID:        rowID,
		Token:     s.Token,
		UserID:    s.User.ID,
		Firstname: s.User.Firstname,
		Lastname:  s.User.Lastname,
		Email:     s.User.Email,
		Phone:     s.User.Phone,
		Role:      string(s.User.Role),
	}
	return r.db.Save(&rec).Error
}

func (r *Repository) Clear() error {
	return r.db.Delete(&record{}, rowID).Error
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
