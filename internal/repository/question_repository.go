package repository

import (
	"errors"

	"gorm.io/gorm"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
)

// QuestionRepository is the item bank: the read-mostly store of authored
// questions. It satisfies engine.ItemBank.
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindEligible(scope engine.Scope, excluding []uint) ([]model.Question, error) {
	var questions []model.Question

	query := r.DB.Model(&model.Question{})
	if scope.SubjectID != nil {
		query = query.Where("subject_id = ?", *scope.SubjectID)
	}
	if scope.TopicID != nil {
		query = query.Where("topic_id = ?", *scope.TopicID)
	}
	if len(excluding) > 0 {
		query = query.Where("id NOT IN ?", excluding)
	}

	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Get(questionID uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) UpdateImageKey(questionID uint, key string) error {
	return r.DB.Model(&model.Question{}).Where("id = ?", questionID).
		Update("image_key", key).Error
}

func (r *QuestionRepository) List(subjectID, topicID uint, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{})
	if subjectID > 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}
