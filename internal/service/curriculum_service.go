package service

import (
	"errors"

	"gorm.io/gorm"

	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/repository"
	"lgs_prep_backend/internal/util"
)

type CurriculumService struct {
	CurriculumRepo *repository.CurriculumRepository
}

func NewCurriculumService(curriculumRepo *repository.CurriculumRepository) *CurriculumService {
	return &CurriculumService{CurriculumRepo: curriculumRepo}
}

func (s *CurriculumService) ListSubjects() ([]model.Subject, error) {
	return s.CurriculumRepo.ListSubjects()
}

func (s *CurriculumService) ListTopics(subjectID uint) ([]model.Topic, error) {
	if _, err := s.CurriculumRepo.FindSubject(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return s.CurriculumRepo.ListTopicsBySubject(subjectID)
}

func (s *CurriculumService) CreateSubject(subject *model.Subject) error {
	return s.CurriculumRepo.CreateSubject(subject)
}

func (s *CurriculumService) CreateUnit(unit *model.Unit) error {
	if _, err := s.CurriculumRepo.FindSubject(unit.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.CurriculumRepo.CreateUnit(unit)
}

func (s *CurriculumService) CreateTopic(topic *model.Topic) error {
	if _, err := s.CurriculumRepo.FindSubject(topic.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return s.CurriculumRepo.CreateTopic(topic)
}
