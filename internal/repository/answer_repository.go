package repository

import (
	"errors"

	"gorm.io/gorm"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
)

// AnswerRepository is the response ledger: append-only, no update or
// delete path on purpose. Satisfies engine.ResponseLedger.
type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Append(answer *model.Answer) error {
	err := r.DB.Create(answer).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// The unique index on session_item_id caught a re-append, which
		// happens when a client retries after a failed session save.
		return engine.ErrInvalidSubmission
	}
	return err
}

func (r *AnswerRepository) History(studentID uint, window engine.HistoryWindow) ([]model.Answer, error) {
	var answers []model.Answer

	query := r.DB.Model(&model.Answer{}).Where("student_id = ?", studentID)
	if !window.Since.IsZero() {
		query = query.Where("created_at >= ?", window.Since)
	}

	if window.Limit > 0 {
		// Take the newest N, then flip back to chronological order.
		err := query.Order("created_at desc").Limit(window.Limit).Find(&answers).Error
		if err != nil {
			return nil, err
		}
		for i, j := 0, len(answers)-1; i < j; i, j = i+1, j-1 {
			answers[i], answers[j] = answers[j], answers[i]
		}
		return answers, nil
	}

	err := query.Order("created_at asc").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) BySession(sessionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at asc").Find(&answers).Error
	return answers, err
}
