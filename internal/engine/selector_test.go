package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgs_prep_backend/internal/model"
)

func practiceSession(subjectID, topicID uint, target int) *model.ExamSession {
	return &model.ExamSession{
		StudentID:         1,
		Mode:              model.ModeAdaptiveTopicPractice,
		Status:            model.StatusInProgress,
		SubjectID:         uintPtr(subjectID),
		TopicID:           uintPtr(topicID),
		TargetCount:       target,
		CurrentDifficulty: model.DifficultyMedium,
	}
}

func TestSelectorPicksCurrentDifficulty(t *testing.T) {
	bank := bankForTopic(1, 10, 3)
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	sess := practiceSession(1, 10, 5)
	for i := 0; i < 5; i++ {
		q, err := sel.NextItem(sess)
		require.NoError(t, err)
		assert.Equal(t, model.DifficultyMedium, q.Difficulty)
	}
}

func TestSelectorExcludesServedItems(t *testing.T) {
	bank := bankForTopic(1, 10, 2)
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	sess := practiceSession(1, 10, 8)
	seen := map[uint]bool{}
	for i := 0; i < 8; i++ {
		q, err := sel.NextItem(sess)
		require.NoError(t, err)
		assert.False(t, seen[q.ID], "question %d served twice", q.ID)
		seen[q.ID] = true
		sess.Items = append(sess.Items, model.SessionItem{QuestionID: q.ID, Sequence: i + 1})
	}
}

func TestSelectorFallbackPrefersEasier(t *testing.T) {
	bank := &fakeBank{questions: []model.Question{
		question(1, 1, 10, model.DifficultyEasy),
		question(2, 1, 10, model.DifficultyHard),
	}}
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	// Nothing at MEDIUM: EASY (one step down) must win over HARD (one up).
	sess := practiceSession(1, 10, 2)
	q, err := sel.NextItem(sess)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyEasy, q.Difficulty)
}

func TestSelectorFallbackNearestThenAny(t *testing.T) {
	bank := &fakeBank{questions: []model.Question{
		question(1, 1, 10, model.DifficultyVeryHard),
	}}
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	sess := practiceSession(1, 10, 2)
	sess.CurrentDifficulty = model.DifficultyEasy
	q, err := sel.NextItem(sess)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyVeryHard, q.Difficulty)
}

func TestSelectorExhaustion(t *testing.T) {
	bank := &fakeBank{questions: []model.Question{
		question(1, 1, 10, model.DifficultyMedium),
	}}
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	sess := practiceSession(1, 10, 5)
	sess.Items = append(sess.Items, model.SessionItem{QuestionID: 1, Sequence: 1})

	_, err := sel.NextItem(sess)
	assert.ErrorIs(t, err, ErrNoEligibleItem)
}

func TestSelectorScopeFiltersOtherTopics(t *testing.T) {
	bank := &fakeBank{questions: []model.Question{
		question(1, 1, 10, model.DifficultyMedium),
		question(2, 1, 20, model.DifficultyMedium),
		question(3, 2, 30, model.DifficultyMedium),
	}}
	sel := NewSelector(bank, &fakeCurriculum{}, testRand())

	sess := practiceSession(1, 10, 3)
	q, err := sel.NextItem(sess)
	require.NoError(t, err)
	assert.Equal(t, uint(1), q.ID)
}

func TestSelectorFullSimCyclesSubjects(t *testing.T) {
	bank := &fakeBank{}
	subjects := []uint{1, 2, 3}
	for _, sub := range subjects {
		for i := 0; i < 4; i++ {
			bank.questions = append(bank.questions,
				question(sub*100+uint(i), sub, sub*10, model.DifficultyMedium))
		}
	}
	sel := NewSelector(bank, &fakeCurriculum{subjects: subjects}, testRand())

	sess := &model.ExamSession{
		Mode:              model.ModeFullLGSSim,
		Status:            model.StatusInProgress,
		TargetCount:       6,
		CurrentDifficulty: model.DifficultyMedium,
	}

	var order []uint
	for i := 0; i < 6; i++ {
		q, err := sel.NextItem(sess)
		require.NoError(t, err)
		order = append(order, q.SubjectID)
		sess.Items = append(sess.Items, model.SessionItem{QuestionID: q.ID, Sequence: i + 1})
	}
	assert.Equal(t, []uint{1, 2, 3, 1, 2, 3}, order)
}

func TestSelectorFullSimWidensWhenSubjectDry(t *testing.T) {
	// Subject 1 has no questions at all; the round-robin slot for it must
	// widen to the rest of the bank instead of ending the session.
	bank := &fakeBank{questions: []model.Question{
		question(1, 2, 20, model.DifficultyMedium),
		question(2, 2, 20, model.DifficultyMedium),
	}}
	sel := NewSelector(bank, &fakeCurriculum{subjects: []uint{1, 2}}, testRand())

	sess := &model.ExamSession{
		Mode:              model.ModeFullLGSSim,
		Status:            model.StatusInProgress,
		TargetCount:       2,
		CurrentDifficulty: model.DifficultyMedium,
	}

	q, err := sel.NextItem(sess)
	require.NoError(t, err)
	assert.Equal(t, uint(2), q.SubjectID)
}

func TestPreferenceOrder(t *testing.T) {
	assert.Equal(t,
		[]model.Difficulty{
			model.DifficultyMedium,
			model.DifficultyEasy,
			model.DifficultyHard,
			model.DifficultyVeryHard,
		},
		preferenceOrder(model.DifficultyMedium))

	assert.Equal(t,
		[]model.Difficulty{
			model.DifficultyVeryHard,
			model.DifficultyHard,
			model.DifficultyMedium,
			model.DifficultyEasy,
		},
		preferenceOrder(model.DifficultyVeryHard))
}
