package model

// Curriculum hierarchy: Subject -> Unit -> Topic -> LearningOutcome.
// Seeded at migration time, extended through the admin endpoints, and
// referenced by questions and answers through foreign keys only.

// swagger:model Subject
type Subject struct {
	BaseModel
	Code  string `gorm:"size:50;unique;not null" json:"code"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Order int    `gorm:"default:0" json:"order"`
	Units []Unit `gorm:"foreignKey:SubjectID" json:"units,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Unit
type Unit struct {
	BaseModel
	SubjectID uint    `gorm:"index;not null" json:"subjectId"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Order     int     `gorm:"default:0" json:"order"`
	Topics    []Topic `gorm:"foreignKey:UnitID" json:"topics,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}

// swagger:model Topic
type Topic struct {
	BaseModel
	UnitID    uint              `gorm:"index;not null" json:"unitId"`
	SubjectID uint              `gorm:"index;not null" json:"subjectId"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Order     int               `gorm:"default:0" json:"order"`
	Outcomes  []LearningOutcome `gorm:"foreignKey:TopicID" json:"outcomes,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

// swagger:model LearningOutcome
type LearningOutcome struct {
	BaseModel
	TopicID     uint   `gorm:"index;not null" json:"topicId"`
	Code        string `gorm:"size:50" json:"code"` // MEB outcome code, e.g. M.8.1.1.1
	Description string `gorm:"type:text;not null" json:"description"`
}

func (LearningOutcome) TableName() string {
	return "learning_outcomes"
}
