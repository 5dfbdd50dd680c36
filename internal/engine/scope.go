package engine

import (
	"lgs_prep_backend/internal/model"
)

// modePolicy is the closed set of per-mode strategies. The policy is
// resolved once at session creation and again when the selector runs; no
// other code branches on the mode.
type modePolicy interface {
	validateScope(scope Scope) error
	initialDifficulty() model.Difficulty
}

func policyFor(mode model.ExamMode) (modePolicy, error) {
	switch mode {
	case model.ModeAdaptiveTopicPractice:
		return topicPracticePolicy{}, nil
	case model.ModeFullLGSSim:
		return fullSimPolicy{}, nil
	case model.ModeTeacherAssigned:
		return teacherAssignedPolicy{}, nil
	}
	return nil, ErrInvalidScope
}

// topicPracticePolicy pins the session to one subject and topic and
// adapts from MEDIUM.
type topicPracticePolicy struct{}

func (topicPracticePolicy) validateScope(scope Scope) error {
	if scope.SubjectID == nil || scope.TopicID == nil {
		return ErrInvalidScope
	}
	return nil
}

func (topicPracticePolicy) initialDifficulty() model.Difficulty {
	return model.DifficultyMedium
}

// fullSimPolicy ignores any requested scope; the selector cycles through
// all subjects toward equal per-subject quotas.
type fullSimPolicy struct{}

func (fullSimPolicy) validateScope(Scope) error {
	return nil
}

func (fullSimPolicy) initialDifficulty() model.Difficulty {
	return model.DifficultyMedium
}

// teacherAssignedPolicy pins a subject chosen by the teacher and ramps up
// from EASY so assigned drills start gently.
type teacherAssignedPolicy struct{}

func (teacherAssignedPolicy) validateScope(scope Scope) error {
	if scope.SubjectID == nil {
		return ErrInvalidScope
	}
	return nil
}

func (teacherAssignedPolicy) initialDifficulty() model.Difficulty {
	return model.DifficultyEasy
}
