package repository

import (
	"gorm.io/gorm"

	"lgs_prep_backend/internal/model"
)

// CurriculumRepository reads the subject/unit/topic hierarchy. The engine
// consumes it as flat lookups (engine.CurriculumResolver); controllers use
// the richer listings for scope pickers.
type CurriculumRepository struct {
	DB *gorm.DB
}

func NewCurriculumRepository(db *gorm.DB) *CurriculumRepository {
	return &CurriculumRepository{DB: db}
}

func (r *CurriculumRepository) SubjectIDs() ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Subject{}).Order("`order` asc, id asc").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CurriculumRepository) SubjectNames() (map[uint]string, error) {
	var subjects []model.Subject
	if err := r.DB.Find(&subjects).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names, nil
}

func (r *CurriculumRepository) TopicNames() (map[uint]string, error) {
	var topics []model.Topic
	if err := r.DB.Find(&topics).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}
	return names, nil
}

func (r *CurriculumRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("`order` asc, id asc").Find(&subjects).Error
	return subjects, err
}

func (r *CurriculumRepository) ListTopicsBySubject(subjectID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("subject_id = ?", subjectID).
		Order("`order` asc, id asc").Find(&topics).Error
	return topics, err
}

func (r *CurriculumRepository) FindSubject(subjectID uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, subjectID).Error
	return &subject, err
}

func (r *CurriculumRepository) FindTopic(topicID uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, topicID).Error
	return &topic, err
}

func (r *CurriculumRepository) CreateSubject(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *CurriculumRepository) CreateUnit(unit *model.Unit) error {
	return r.DB.Create(unit).Error
}

func (r *CurriculumRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}
