package model

import (
	"encoding/json"
	"time"
)

// QuestionView is the student-facing projection of a question: no correct
// choice, no explanation.
//
// swagger:model QuestionView
type QuestionView struct {
	ID               uint            `json:"id"`
	SubjectID        uint            `json:"subjectId"`
	TopicID          uint            `json:"topicId"`
	Difficulty       Difficulty      `json:"difficulty"`
	Text             string          `json:"text"`
	Choices          json.RawMessage `json:"choices"`
	EstimatedSeconds int             `json:"estimatedSeconds"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	Sequence         int             `json:"sequence"`
}

func NewQuestionView(q *Question, sequence int) *QuestionView {
	if q == nil {
		return nil
	}
	return &QuestionView{
		ID:               q.ID,
		SubjectID:        q.SubjectID,
		TopicID:          q.TopicID,
		Difficulty:       q.Difficulty,
		Text:             q.Text,
		Choices:          q.Choices,
		EstimatedSeconds: q.EstimatedSeconds,
		ImageURL:         q.ImageURL,
		Sequence:         sequence,
	}
}

// swagger:model ExamStartResult
type ExamStartResult struct {
	SessionID   uint          `json:"sessionId"`
	Mode        ExamMode      `json:"mode"`
	TargetCount int           `json:"targetCount"`
	FirstItem   *QuestionView `json:"firstItem"`
}

// swagger:model AnswerResult
type AnswerResult struct {
	Correct   bool          `json:"correct"`
	NextItem  *QuestionView `json:"nextItem,omitempty"`
	Completed bool          `json:"completed"`
	Finish    *FinishResult `json:"finish,omitempty"`
}

// swagger:model FinishResult
type FinishResult struct {
	TotalScore        float64   `json:"totalScore"`
	CorrectCount      int       `json:"correctCount"`
	AnsweredCount     int       `json:"answeredCount"`
	EstimatedLGSScore float64   `json:"estimatedLgsScore"`
	CompletedAt       time.Time `json:"completedAt"`
}

// TopicStat is one entry of the weak/focus topic rankings.
//
// swagger:model TopicStat
type TopicStat struct {
	TopicID   uint    `json:"topicId"`
	TopicName string  `json:"topicName"`
	SubjectID uint    `json:"subjectId"`
	Attempts  int     `json:"attempts"`
	Correct   int     `json:"correct"`
	Accuracy  float64 `json:"accuracy"`
}

// swagger:model DashboardSummary
type DashboardSummary struct {
	RecentSolved   int                `json:"recentSolved"`
	RecentAccuracy float64            `json:"recentAccuracy"`
	SubjectMastery map[string]float64 `json:"subjectMastery"`
	WeakTopics     []TopicStat        `json:"weakTopics"`
	FocusTopics    []TopicStat        `json:"focusTopics"`
}
