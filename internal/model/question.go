package model

import (
	"encoding/json"
)

// Difficulty is the four-level ladder every question is authored at.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "EASY"
	DifficultyMedium   Difficulty = "MEDIUM"
	DifficultyHard     Difficulty = "HARD"
	DifficultyVeryHard Difficulty = "VERY_HARD"
)

var difficultyOrder = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyVeryHard,
}

func (d Difficulty) Valid() bool {
	for _, v := range difficultyOrder {
		if d == v {
			return true
		}
	}
	return false
}

// StepUp raises the level one step, capped at VERY_HARD.
func (d Difficulty) StepUp() Difficulty {
	for i, v := range difficultyOrder {
		if d == v && i < len(difficultyOrder)-1 {
			return difficultyOrder[i+1]
		}
	}
	return DifficultyVeryHard
}

// StepDown lowers the level one step. The EASY floor holds no matter
// how many consecutive misses arrive.
func (d Difficulty) StepDown() Difficulty {
	for i, v := range difficultyOrder {
		if d == v && i > 0 {
			return difficultyOrder[i-1]
		}
	}
	return DifficultyEasy
}

// Weight is the scoring contribution of a correct answer at this level.
func (d Difficulty) Weight() float64 {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2
	case DifficultyVeryHard:
		return 3
	}
	return 1
}

// Difficulties returns the ladder from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// swagger:model Question
type Question struct {
	BaseModel
	SubjectID        uint            `gorm:"index;not null" json:"subjectId"`
	UnitID           uint            `gorm:"index" json:"unitId"`
	TopicID          uint            `gorm:"index;not null" json:"topicId"`
	OutcomeID        uint            `gorm:"index" json:"outcomeId"`
	Difficulty       Difficulty      `gorm:"type:enum('EASY','MEDIUM','HARD','VERY_HARD');not null;index" json:"difficulty"`
	Text             string          `gorm:"type:text;not null" json:"text"`
	Choices          json.RawMessage `gorm:"type:json" json:"choices"` // {"A": "...", "B": "...", ...}
	CorrectChoice    string          `gorm:"size:5;not null" json:"-"`
	Explanation      string          `gorm:"type:text" json:"-"`
	EstimatedSeconds int             `gorm:"default:90" json:"estimatedSeconds"`
	ImageKey         string          `gorm:"size:255" json:"-"`
	ImageURL         string          `gorm:"-" json:"imageUrl,omitempty"`
	CreatorID        uint            `gorm:"index" json:"creatorId"`
}

func (Question) TableName() string {
	return "questions"
}
