package model

// Answer is one row of the response ledger: append-only, never updated or
// deleted. Curriculum tags and difficulty are denormalized from the
// question so that mastery analytics read the ledger alone, without joins.
//
// swagger:model Answer
type Answer struct {
	BaseModel
	SessionItemID  uint       `gorm:"uniqueIndex;not null" json:"sessionItemId"`
	SessionID      uint       `gorm:"index;not null" json:"sessionId"`
	StudentID      uint       `gorm:"index;not null" json:"studentId"`
	QuestionID     uint       `gorm:"index;not null" json:"questionId"`
	SubjectID      uint       `gorm:"index;not null" json:"subjectId"`
	TopicID        uint       `gorm:"index;not null" json:"topicId"`
	OutcomeID      uint       `gorm:"index" json:"outcomeId"`
	Difficulty     Difficulty `gorm:"type:enum('EASY','MEDIUM','HARD','VERY_HARD');not null" json:"difficulty"`
	SelectedChoice *string    `gorm:"size:5" json:"selectedChoice"` // nil on timeout / skip
	Correct        bool       `gorm:"not null" json:"correct"`
	TimeSpentSec   int        `gorm:"default:0" json:"timeSpentSec"`
}

func (Answer) TableName() string {
	return "answers"
}
