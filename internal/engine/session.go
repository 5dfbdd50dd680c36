package engine

import (
	"time"

	"lgs_prep_backend/internal/model"
)

// SessionEngine owns the exam session lifecycle:
// NOT_STARTED -> IN_PROGRESS -> COMPLETED, no skips, COMPLETED immutable.
// It is the only writer of a session; callers are expected to funnel all
// mutations of one session through a single actor.
type SessionEngine struct {
	bank     ItemBank
	ledger   ResponseLedger
	store    SessionStore
	selector *Selector
}

func NewSessionEngine(bank ItemBank, ledger ResponseLedger, store SessionStore, selector *Selector) *SessionEngine {
	return &SessionEngine{
		bank:     bank,
		ledger:   ledger,
		store:    store,
		selector: selector,
	}
}

// SubmitOutcome reports what a submission did: whether the answer was
// correct, the next question if the session continues, and the final
// session when it completed.
type SubmitOutcome struct {
	Session      *model.ExamSession
	Correct      bool
	NextQuestion *model.Question
	Completed    bool
}

// Start creates a session in IN_PROGRESS and serves its first item.
// Scope requirements depend on the mode; a mode that needs a subject or
// topic without one fails with ErrInvalidScope.
func (e *SessionEngine) Start(studentID uint, mode model.ExamMode, scope Scope, targetCount int, assignedBy *uint) (*model.ExamSession, *model.Question, error) {
	policy, err := policyFor(mode)
	if err != nil {
		return nil, nil, err
	}
	if err := policy.validateScope(scope); err != nil {
		return nil, nil, err
	}
	if targetCount <= 0 {
		return nil, nil, ErrInvalidScope
	}

	sess := &model.ExamSession{
		StudentID:         studentID,
		Mode:              mode,
		Status:            model.StatusInProgress,
		SubjectID:         scope.SubjectID,
		TopicID:           scope.TopicID,
		AssignedByID:      assignedBy,
		TargetCount:       targetCount,
		CurrentDifficulty: policy.initialDifficulty(),
		StartedAt:         time.Now(),
	}
	if mode == model.ModeFullLGSSim {
		sess.SubjectID = nil
		sess.TopicID = nil
	}

	// Resolve the first item before touching the store: a scope with no
	// eligible questions must not leave an unplayable session behind.
	first, err := e.selector.NextItem(sess)
	if err != nil {
		return nil, nil, err
	}

	if err := e.store.Create(sess); err != nil {
		return nil, nil, err
	}

	e.serveItem(sess, first)
	if err := e.store.Save(sess); err != nil {
		return nil, nil, err
	}

	return sess, first, nil
}

// SubmitAnswer records the answer for the most recently served, still
// unanswered item. Only the session's student may submit; anyone else
// fails with ErrNotOwner. The sequence number is the concurrency token: a
// stale or already-answered sequence fails with ErrInvalidSubmission and
// leaves the ledger untouched, making client retries safe. Selector
// exhaustion is a normal terminal condition here, not a fault.
func (e *SessionEngine) SubmitAnswer(studentID, sessionID uint, sequence int, selectedChoice *string, timeSpentSec int) (*SubmitOutcome, error) {
	sess, err := e.store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	if sess.StudentID != studentID {
		return nil, ErrNotOwner
	}
	if sess.Status != model.StatusInProgress {
		return nil, ErrInvalidSubmission
	}

	cur := sess.CurrentItem()
	if cur == nil || cur.Answered || cur.Sequence != sequence {
		return nil, ErrInvalidSubmission
	}

	question, err := e.bank.Get(cur.QuestionID)
	if err != nil {
		return nil, err
	}

	correct := selectedChoice != nil && *selectedChoice == question.CorrectChoice

	answer := &model.Answer{
		SessionItemID:  cur.ID,
		SessionID:      sess.ID,
		StudentID:      sess.StudentID,
		QuestionID:     question.ID,
		SubjectID:      question.SubjectID,
		TopicID:        question.TopicID,
		OutcomeID:      question.OutcomeID,
		Difficulty:     question.Difficulty,
		SelectedChoice: selectedChoice,
		Correct:        correct,
		TimeSpentSec:   timeSpentSec,
	}
	if err := e.ledger.Append(answer); err != nil {
		return nil, err
	}

	cur.Answered = true
	if correct {
		sess.CorrectCount++
		sess.TotalScore += question.Difficulty.Weight()
		sess.CurrentDifficulty = sess.CurrentDifficulty.StepUp()
	} else {
		sess.CurrentDifficulty = sess.CurrentDifficulty.StepDown()
	}

	outcome := &SubmitOutcome{Session: sess, Correct: correct}

	if e.answeredCount(sess) >= sess.TargetCount {
		e.complete(sess)
		outcome.Completed = true
	} else {
		next, err := e.selector.NextItem(sess)
		switch err {
		case nil:
			e.serveItem(sess, next)
			outcome.NextQuestion = next
		case ErrNoEligibleItem:
			// Bank exhausted: terminate early with a partial result.
			e.complete(sess)
			outcome.Completed = true
		default:
			return nil, err
		}
	}

	if err := e.store.Save(sess); err != nil {
		return nil, err
	}

	return outcome, nil
}

// Abandon forcibly completes a stalled session, keeping whatever answers
// exist. Scoring proceeds exactly as in normal completion.
func (e *SessionEngine) Abandon(sessionID uint) (*model.ExamSession, error) {
	sess, err := e.store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != model.StatusInProgress {
		return nil, ErrInvalidSubmission
	}

	e.complete(sess)
	if err := e.store.Save(sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (e *SessionEngine) serveItem(sess *model.ExamSession, q *model.Question) {
	sess.Items = append(sess.Items, model.SessionItem{
		SessionID:        sess.ID,
		QuestionID:       q.ID,
		Sequence:         len(sess.Items) + 1,
		ServedDifficulty: q.Difficulty,
		ServedAt:         time.Now(),
	})
}

func (e *SessionEngine) answeredCount(sess *model.ExamSession) int {
	n := 0
	for _, it := range sess.Items {
		if it.Answered {
			n++
		}
	}
	return n
}

func (e *SessionEngine) complete(sess *model.ExamSession) {
	now := time.Now()
	sess.Status = model.StatusCompleted
	sess.CompletedAt = &now
	sess.EstimatedScore = EstimateLGSScore(sess.TotalScore, sess.TargetCount)
}
