package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/repository"
	"lgs_prep_backend/internal/util"
)

var ErrInvalidQuestion = errors.New("invalid question")

// QuestionService is the authoring side of the item bank. Students never
// touch it; questions reach them only through exam sessions.
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Storage      *StorageService
}

func NewQuestionService(questionRepo *repository.QuestionRepository, storage *StorageService) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		Storage:      storage,
	}
}

func (s *QuestionService) Create(question *model.Question) error {
	if err := validateQuestion(question); err != nil {
		return err
	}
	return s.QuestionRepo.Create(question)
}

func (s *QuestionService) Get(questionID uint) (*model.Question, error) {
	question, err := s.QuestionRepo.Get(questionID)
	if err != nil {
		return nil, err
	}
	s.fillImageURL(question)
	return question, nil
}

func (s *QuestionService) List(subjectID, topicID uint, page, limit int) ([]model.Question, int64, error) {
	questions, total, err := s.QuestionRepo.List(subjectID, topicID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range questions {
		s.fillImageURL(&questions[i])
	}
	return questions, total, nil
}

// UploadImage attaches an illustration to a question. The stored object
// name is random so re-uploads never collide with stale CDN entries.
func (s *QuestionService) UploadImage(ctx context.Context, questionID uint, file *multipart.FileHeader) (string, error) {
	question, err := s.QuestionRepo.Get(questionID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	key := "questions/" + uuid.New().String() + filepath.Ext(file.Filename)
	url, err := s.Storage.Upload(ctx, key, src, file.Size, mimeType)
	if err != nil {
		return "", err
	}

	if question.ImageKey != "" {
		// Old image is orphaned otherwise.
		_ = s.Storage.Delete(ctx, question.ImageKey)
	}

	if err := s.QuestionRepo.UpdateImageKey(questionID, key); err != nil {
		return "", err
	}

	return url, nil
}

func (s *QuestionService) fillImageURL(q *model.Question) {
	if q.ImageKey != "" {
		q.ImageURL = s.Storage.GetURL(q.ImageKey)
	}
}

func validateQuestion(q *model.Question) error {
	if q.SubjectID == 0 || q.TopicID == 0 || q.Text == "" {
		return ErrInvalidQuestion
	}
	if !q.Difficulty.Valid() {
		return ErrInvalidQuestion
	}

	var choices map[string]string
	if err := json.Unmarshal(q.Choices, &choices); err != nil {
		return ErrInvalidQuestion
	}
	if len(choices) < 2 {
		return ErrInvalidQuestion
	}
	if _, ok := choices[q.CorrectChoice]; !ok {
		return ErrInvalidQuestion
	}
	return nil
}
