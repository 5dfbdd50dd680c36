package model

import (
	"time"
)

type ExamMode string

const (
	ModeAdaptiveTopicPractice ExamMode = "ADAPTIVE_TOPIC_PRACTICE"
	ModeFullLGSSim            ExamMode = "FULL_LGS_SIM"
	ModeTeacherAssigned       ExamMode = "TEACHER_ASSIGNED"
)

func (m ExamMode) Valid() bool {
	switch m {
	case ModeAdaptiveTopicPractice, ModeFullLGSSim, ModeTeacherAssigned:
		return true
	}
	return false
}

type SessionStatus string

const (
	StatusNotStarted SessionStatus = "NOT_STARTED"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusCompleted  SessionStatus = "COMPLETED"
)

// ExamSession is one student's attempt at an exam. Mutated only by the
// session engine; immutable once COMPLETED.
//
// swagger:model ExamSession
type ExamSession struct {
	BaseModel
	StudentID         uint          `gorm:"index;not null" json:"studentId"`
	Mode              ExamMode      `gorm:"type:enum('ADAPTIVE_TOPIC_PRACTICE','FULL_LGS_SIM','TEACHER_ASSIGNED');not null" json:"mode"`
	Status            SessionStatus `gorm:"type:enum('NOT_STARTED','IN_PROGRESS','COMPLETED');default:'NOT_STARTED';index" json:"status"`
	SubjectID         *uint         `gorm:"index" json:"subjectId,omitempty"`
	TopicID           *uint         `gorm:"index" json:"topicId,omitempty"`
	AssignedByID      *uint         `gorm:"index" json:"assignedById,omitempty"`
	TargetCount       int           `gorm:"not null" json:"targetCount"`
	CurrentDifficulty Difficulty    `gorm:"type:enum('EASY','MEDIUM','HARD','VERY_HARD');default:'MEDIUM'" json:"currentDifficulty"`
	CorrectCount      int           `gorm:"default:0" json:"correctCount"`
	TotalScore        float64       `gorm:"default:0" json:"totalScore"` // correct answers weighted by difficulty
	EstimatedScore    float64       `gorm:"default:0" json:"estimatedScore"`
	StartedAt         time.Time     `json:"startedAt"`
	CompletedAt       *time.Time    `json:"completedAt,omitempty"`
	Items             []SessionItem `gorm:"foreignKey:SessionID" json:"items,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ServedQuestionIDs lists every question already served, in order.
func (s *ExamSession) ServedQuestionIDs() []uint {
	ids := make([]uint, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.QuestionID
	}
	return ids
}

// CurrentItem returns the most recently served item, or nil before the
// first serve.
func (s *ExamSession) CurrentItem() *SessionItem {
	if len(s.Items) == 0 {
		return nil
	}
	return &s.Items[len(s.Items)-1]
}

// SessionItem is one served question within a session. Sequence is the
// per-session concurrency token: it increases monotonically and an answer
// must reference the current, still-unanswered sequence.
//
// swagger:model SessionItem
type SessionItem struct {
	BaseModel
	SessionID        uint       `gorm:"index;not null" json:"sessionId"`
	QuestionID       uint       `gorm:"index;not null" json:"questionId"`
	Sequence         int        `gorm:"not null" json:"sequence"`
	ServedDifficulty Difficulty `gorm:"type:enum('EASY','MEDIUM','HARD','VERY_HARD');not null" json:"servedDifficulty"`
	Answered         bool       `gorm:"default:false" json:"answered"`
	ServedAt         time.Time  `json:"servedAt"`
}

func (SessionItem) TableName() string {
	return "exam_session_items"
}
