package repository

import (
	"errors"

	"gorm.io/gorm"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
)

// SessionRepository persists exam sessions whole, items included; they
// are small and short-lived. Satisfies engine.SessionStore.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.ExamSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) Load(sessionID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence asc")
	}).First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(session *model.ExamSession) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(session).Error
}

func (r *SessionRepository) ListByStudent(studentID uint, page, limit int) ([]model.ExamSession, int64, error) {
	var sessions []model.ExamSession
	var total int64

	query := r.DB.Model(&model.ExamSession{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&sessions).Error
	return sessions, total, err
}
