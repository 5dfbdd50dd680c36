package engine

import (
	"time"

	"lgs_prep_backend/internal/model"
)

// Scope restricts selection to a subject and optionally a single topic.
type Scope struct {
	SubjectID *uint
	TopicID   *uint
}

// HistoryWindow bounds a ledger query. The zero value means the full
// history. Limit keeps only the most recent N answers.
type HistoryWindow struct {
	Since time.Time
	Limit int
}

// ItemBank is the read-only view of authored questions.
type ItemBank interface {
	// FindEligible returns questions matching scope, excluding the given
	// question IDs, in no particular order.
	FindEligible(scope Scope, excluding []uint) ([]model.Question, error)
	Get(questionID uint) (*model.Question, error)
}

// ResponseLedger is the append-only record of every answered question.
// Append failures are fatal to the in-flight operation; retrying is the
// storage collaborator's concern, never the engine's. A second Append for
// a session item that already has an answer must fail with
// ErrInvalidSubmission, so a client retry after a failed session save
// cannot double-record the answer.
type ResponseLedger interface {
	Append(answer *model.Answer) error
	History(studentID uint, window HistoryWindow) ([]model.Answer, error)
}

// SessionStore persists sessions whole; they are small and short-lived.
type SessionStore interface {
	Create(session *model.ExamSession) error
	Load(sessionID uint) (*model.ExamSession, error)
	Save(session *model.ExamSession) error
}

// CurriculumResolver exposes the subject/unit/topic hierarchy as flat
// lookups so the engine never traverses the storage-layer object graph.
type CurriculumResolver interface {
	SubjectIDs() ([]uint, error)
	SubjectNames() (map[uint]string, error)
	TopicNames() (map[uint]string, error)
}
