package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/models"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, used by the session code retry loop.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type SessionRepository interface {
	Create(session *models.Session) error
	FindByCode(code string) (*models.Session, error)
	FindByID(id string) (*models.Session, error)
	SetActive(id string, active bool) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a session; a duplicate join code surfaces as a unique
// violation for the caller to retry with a fresh code.
func (r *sessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindByCode retrieves a session by its join code
func (r *sessionRepository) FindByCode(code string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("code = ?", code).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindByID retrieves a session by its ID
func (r *sessionRepository) FindByID(id string) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SetActive flips the is_active flag (used by the host to close a session)
func (r *sessionRepository) SetActive(id string, active bool) error {
	result := r.db.Model(&models.Session{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
