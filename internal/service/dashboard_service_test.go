package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
)

type fakeLedger struct {
	answers []model.Answer
}

func (l *fakeLedger) Append(answer *model.Answer) error {
	l.answers = append(l.answers, *answer)
	return nil
}

func (l *fakeLedger) History(studentID uint, window engine.HistoryWindow) ([]model.Answer, error) {
	var out []model.Answer
	for _, ans := range l.answers {
		if ans.StudentID != studentID {
			continue
		}
		if !window.Since.IsZero() && ans.CreatedAt.Before(window.Since) {
			continue
		}
		out = append(out, ans)
	}
	if window.Limit > 0 && len(out) > window.Limit {
		out = out[len(out)-window.Limit:]
	}
	return out, nil
}

type fakeCurriculum struct {
	subjects map[uint]string
	topics   map[uint]string
}

func (c *fakeCurriculum) SubjectIDs() ([]uint, error) {
	ids := make([]uint, 0, len(c.subjects))
	for id := range c.subjects {
		ids = append(ids, id)
	}
	return ids, nil
}

func (c *fakeCurriculum) SubjectNames() (map[uint]string, error) {
	return c.subjects, nil
}

func (c *fakeCurriculum) TopicNames() (map[uint]string, error) {
	return c.topics, nil
}

func answerAt(studentID, subjectID, topicID uint, difficulty model.Difficulty, correct bool, age time.Duration) model.Answer {
	return model.Answer{
		BaseModel:  model.BaseModel{CreatedAt: time.Now().Add(-age)},
		StudentID:  studentID,
		SubjectID:  subjectID,
		TopicID:    topicID,
		Difficulty: difficulty,
		Correct:    correct,
	}
}

func newDashboardService(ledger *fakeLedger, curriculum *fakeCurriculum) *DashboardService {
	return NewDashboardService(ledger, curriculum, engine.NewAggregator(engine.DefaultSettings()), nil)
}

func TestDashboardSummaryEmptyHistory(t *testing.T) {
	svc := newDashboardService(&fakeLedger{}, &fakeCurriculum{
		subjects: map[uint]string{1: "Matematik"},
		topics:   map[uint]string{},
	})

	summary, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.RecentSolved)
	assert.Equal(t, 0.0, summary.RecentAccuracy)
	assert.Empty(t, summary.SubjectMastery)
	assert.Empty(t, summary.WeakTopics)
	assert.Empty(t, summary.FocusTopics)
}

func TestDashboardSummaryNamesAndRecency(t *testing.T) {
	ledger := &fakeLedger{}
	curriculum := &fakeCurriculum{
		subjects: map[uint]string{1: "Matematik"},
		topics:   map[uint]string{10: "Üslü İfadeler"},
	}

	// Three recent misses and one correct in the last week, plus one old
	// answer that falls outside the recent window but still counts toward
	// mastery.
	for i := 0; i < 3; i++ {
		ledger.answers = append(ledger.answers,
			answerAt(42, 1, 10, model.DifficultyMedium, false, time.Duration(i+1)*24*time.Hour))
	}
	ledger.answers = append(ledger.answers,
		answerAt(42, 1, 10, model.DifficultyMedium, true, 24*time.Hour))
	ledger.answers = append(ledger.answers,
		answerAt(42, 1, 10, model.DifficultyMedium, true, 30*24*time.Hour))

	svc := newDashboardService(ledger, curriculum)

	summary, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.RecentSolved)
	assert.InDelta(t, 0.25, summary.RecentAccuracy, 1e-9)

	assert.Contains(t, summary.SubjectMastery, "Matematik")

	require.Len(t, summary.WeakTopics, 1)
	assert.Equal(t, "Üslü İfadeler", summary.WeakTopics[0].TopicName)
	assert.Equal(t, uint(10), summary.WeakTopics[0].TopicID)
	assert.Equal(t, 5, summary.WeakTopics[0].Attempts)
	assert.InDelta(t, 0.4, summary.WeakTopics[0].Accuracy, 1e-9)

	require.Len(t, summary.FocusTopics, 1)
	assert.Equal(t, uint(10), summary.FocusTopics[0].TopicID)
}

func TestDashboardSummaryIsolatesStudents(t *testing.T) {
	ledger := &fakeLedger{}
	ledger.answers = append(ledger.answers,
		answerAt(7, 1, 10, model.DifficultyEasy, true, time.Hour))

	svc := newDashboardService(ledger, &fakeCurriculum{
		subjects: map[uint]string{1: "Matematik"},
		topics:   map[uint]string{10: "Çarpanlar ve Katlar"},
	})

	summary, err := svc.Summary(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.RecentSolved)
	assert.Empty(t, summary.SubjectMastery)
}
