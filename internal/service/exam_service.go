package service

import (
	"errors"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/repository"
	"lgs_prep_backend/internal/util"
	"lgs_prep_backend/pkg/monitoring"
)

// StartExamRequest is the service-level start command. StudentID is only
// honored for TEACHER_ASSIGNED starts issued by a teacher or admin.
type StartExamRequest struct {
	Mode        model.ExamMode
	SubjectID   *uint
	TopicID     *uint
	TargetCount int
	StudentID   uint
}

type ExamService struct {
	Engine      *engine.SessionEngine
	SessionRepo *repository.SessionRepository
	Storage     *StorageService
}

func NewExamService(eng *engine.SessionEngine, sessionRepo *repository.SessionRepository, storage *StorageService) *ExamService {
	return &ExamService{
		Engine:      eng,
		SessionRepo: sessionRepo,
		Storage:     storage,
	}
}

func (s *ExamService) Start(callerID uint, callerRole model.UserRole, req StartExamRequest) (*model.ExamStartResult, error) {
	if !req.Mode.Valid() {
		return nil, engine.ErrInvalidScope
	}

	studentID := callerID
	var assignedBy *uint

	if req.Mode == model.ModeTeacherAssigned {
		if callerRole != model.Teacher && callerRole != model.Admin {
			return nil, util.ErrPermissionDenied
		}
		if req.StudentID == 0 {
			return nil, engine.ErrInvalidScope
		}
		studentID = req.StudentID
		assignedBy = &callerID
	}

	targetCount := req.TargetCount
	if targetCount == 0 {
		if req.Mode == model.ModeFullLGSSim {
			targetCount = util.DefaultFullSimCount
		} else {
			targetCount = util.DefaultTopicPracticeCount
		}
	}
	if targetCount < 0 || targetCount > util.MaxTargetCount {
		return nil, engine.ErrInvalidScope
	}

	scope := engine.Scope{SubjectID: req.SubjectID, TopicID: req.TopicID}
	sess, first, err := s.Engine.Start(studentID, req.Mode, scope, targetCount, assignedBy)
	if err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.WithLabelValues(string(req.Mode)).Inc()

	return &model.ExamStartResult{
		SessionID:   sess.ID,
		Mode:        sess.Mode,
		TargetCount: sess.TargetCount,
		FirstItem:   s.questionView(first, 1),
	}, nil
}

// Submit hands the answer to the engine, which enforces ownership on its
// single session load.
func (s *ExamService) Submit(callerID uint, sessionID uint, sequence int, selectedChoice *string, timeSpentSec int) (*model.AnswerResult, error) {
	outcome, err := s.Engine.SubmitAnswer(callerID, sessionID, sequence, selectedChoice, timeSpentSec)
	if errors.Is(err, engine.ErrNotOwner) {
		return nil, util.ErrPermissionDenied
	}
	if err != nil {
		return nil, err
	}

	monitoring.AnswersRecorded.WithLabelValues(boolLabel(outcome.Correct)).Inc()

	result := &model.AnswerResult{
		Correct:   outcome.Correct,
		Completed: outcome.Completed,
	}

	if outcome.Completed {
		finish := finishResult(outcome.Session)
		result.Finish = finish

		reason := "target_reached"
		if finish.AnsweredCount < outcome.Session.TargetCount {
			reason = "bank_exhausted"
		}
		monitoring.SessionsCompleted.WithLabelValues(string(outcome.Session.Mode), reason).Inc()
		return result, nil
	}

	next := outcome.NextQuestion
	result.NextItem = s.questionView(next, outcome.Session.CurrentItem().Sequence)
	return result, nil
}

// Abandon force-completes a stalled session. The owner can abandon their
// own session; teachers and admins can abandon anyone's.
func (s *ExamService) Abandon(callerID uint, callerRole model.UserRole, sessionID uint) (*model.FinishResult, error) {
	sess, err := s.SessionRepo.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != callerID && callerRole != model.Teacher && callerRole != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	sess, err = s.Engine.Abandon(sessionID)
	if err != nil {
		return nil, err
	}

	monitoring.SessionsCompleted.WithLabelValues(string(sess.Mode), "abandoned").Inc()
	return finishResult(sess), nil
}

func (s *ExamService) GetSession(callerID uint, callerRole model.UserRole, sessionID uint) (*model.ExamSession, error) {
	sess, err := s.SessionRepo.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != callerID && callerRole != model.Teacher && callerRole != model.Admin {
		return nil, util.ErrPermissionDenied
	}
	return sess, nil
}

func (s *ExamService) ListSessions(studentID uint, page, limit int) ([]model.ExamSession, int64, error) {
	return s.SessionRepo.ListByStudent(studentID, page, limit)
}

func (s *ExamService) questionView(q *model.Question, sequence int) *model.QuestionView {
	view := model.NewQuestionView(q, sequence)
	if view != nil && q.ImageKey != "" {
		view.ImageURL = s.Storage.GetURL(q.ImageKey)
	}
	return view
}

func finishResult(sess *model.ExamSession) *model.FinishResult {
	answered := 0
	for _, it := range sess.Items {
		if it.Answered {
			answered++
		}
	}

	finish := &model.FinishResult{
		TotalScore:        sess.TotalScore,
		CorrectCount:      sess.CorrectCount,
		AnsweredCount:     answered,
		EstimatedLGSScore: sess.EstimatedScore,
	}
	if sess.CompletedAt != nil {
		finish.CompletedAt = *sess.CompletedAt
	}
	return finish
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
