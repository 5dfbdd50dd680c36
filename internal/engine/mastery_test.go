package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgs_prep_backend/internal/model"
)

func answerAt(subjectID, topicID uint, difficulty model.Difficulty, correct bool, at time.Time) model.Answer {
	a := model.Answer{
		StudentID:  1,
		SubjectID:  subjectID,
		TopicID:    topicID,
		Difficulty: difficulty,
		Correct:    correct,
	}
	a.CreatedAt = at
	return a
}

func TestProfileEmptyHistory(t *testing.T) {
	agg := NewAggregator(DefaultSettings())

	profile := agg.Profile(nil, time.Now())
	assert.Empty(t, profile.SubjectMastery)
	assert.Empty(t, profile.WeakTopics)
	assert.Empty(t, profile.FocusTopics)
	assert.Empty(t, profile.TopicStats)
}

func TestMasteryAllCorrectIsOne(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	answers := []model.Answer{
		answerAt(1, 10, model.DifficultyEasy, true, now.Add(-24*time.Hour)),
		answerAt(1, 10, model.DifficultyHard, true, now.Add(-48*time.Hour)),
	}

	profile := agg.Profile(answers, now)
	assert.InDelta(t, 1.0, profile.SubjectMastery[1], 1e-9)
}

// Correct answers at VERY_HARD never score below the same count of
// correct answers at EASY, all else equal.
func TestMasteryDifficultyMonotonic(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	build := func(correctDiff model.Difficulty) []model.Answer {
		var out []model.Answer
		for i := 0; i < 3; i++ {
			out = append(out, answerAt(1, 10, correctDiff, true, now.Add(-time.Duration(i)*time.Hour)))
			out = append(out, answerAt(1, 10, model.DifficultyMedium, false, now.Add(-time.Duration(i+10)*time.Hour)))
		}
		return out
	}

	hard := agg.Profile(build(model.DifficultyVeryHard), now).SubjectMastery[1]
	easy := agg.Profile(build(model.DifficultyEasy), now).SubjectMastery[1]
	assert.GreaterOrEqual(t, hard, easy)
	assert.Greater(t, hard, easy, "harder correct answers should outweigh the same misses")
}

// A student who recently improved ranks above identical lifetime accuracy
// achieved long ago.
func TestMasteryRecencyMonotonic(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	recentImprover := []model.Answer{
		answerAt(1, 10, model.DifficultyMedium, false, now.Add(-60*24*time.Hour)),
		answerAt(1, 10, model.DifficultyMedium, true, now.Add(-1*24*time.Hour)),
	}
	earlyPeaker := []model.Answer{
		answerAt(1, 10, model.DifficultyMedium, true, now.Add(-60*24*time.Hour)),
		answerAt(1, 10, model.DifficultyMedium, false, now.Add(-1*24*time.Hour)),
	}

	improving := agg.Profile(recentImprover, now).SubjectMastery[1]
	fading := agg.Profile(earlyPeaker, now).SubjectMastery[1]
	assert.Greater(t, improving, fading)
}

func TestWeakTopicsRespectAttemptFloor(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	// Topic 10: three misses, weak. Topic 20: one miss, insufficiently
	// sampled, must not appear.
	answers := []model.Answer{
		answerAt(1, 10, model.DifficultyMedium, false, now),
		answerAt(1, 10, model.DifficultyMedium, false, now),
		answerAt(1, 10, model.DifficultyMedium, true, now),
		answerAt(1, 20, model.DifficultyMedium, false, now),
	}

	profile := agg.Profile(answers, now)
	require.Len(t, profile.WeakTopics, 1)
	assert.Equal(t, uint(10), profile.WeakTopics[0].TopicID)
	assert.Equal(t, 3, profile.WeakTopics[0].Attempts)
}

func TestWeakTopicsOrderedWorstFirstTiesByAttempts(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	var answers []model.Answer
	// Topic 10: 1/4 correct (0.25). Topic 20: 0/3 (0.0).
	// Topic 30 and 40: both 1/3 (0.333); the topic with fewer attempts
	// wins a tie, so give 40 extra answers keeping the same accuracy.
	for i := 0; i < 3; i++ {
		answers = append(answers, answerAt(1, 10, model.DifficultyMedium, false, now))
		answers = append(answers, answerAt(1, 20, model.DifficultyMedium, false, now))
	}
	answers = append(answers, answerAt(1, 10, model.DifficultyMedium, true, now))
	answers = append(answers,
		answerAt(1, 30, model.DifficultyMedium, true, now),
		answerAt(1, 30, model.DifficultyMedium, false, now),
		answerAt(1, 30, model.DifficultyMedium, false, now),
		answerAt(1, 40, model.DifficultyMedium, true, now),
		answerAt(1, 40, model.DifficultyMedium, true, now),
		answerAt(1, 40, model.DifficultyMedium, false, now),
		answerAt(1, 40, model.DifficultyMedium, false, now),
		answerAt(1, 40, model.DifficultyMedium, false, now),
		answerAt(1, 40, model.DifficultyMedium, false, now),
	)

	profile := agg.Profile(answers, now)
	var order []uint
	for _, st := range profile.WeakTopics {
		order = append(order, st.TopicID)
	}
	// 20 (0.0) first, then 10 (0.25), then the 1/3-accuracy pair with the
	// less-practiced topic 30 ahead of 40.
	assert.Equal(t, []uint{20, 10, 30, 40}, order)
}

func TestFocusTopicsCapped(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxFocusTopics = 2
	agg := NewAggregator(settings)
	now := time.Now()

	var answers []model.Answer
	for topic := uint(10); topic <= 50; topic += 10 {
		for i := 0; i < 3; i++ {
			answers = append(answers, answerAt(1, topic, model.DifficultyMedium, false, now))
		}
	}

	profile := agg.Profile(answers, now)
	assert.Len(t, profile.WeakTopics, 5)
	assert.Len(t, profile.FocusTopics, 2)
}

func TestUpdateSettingsHotReload(t *testing.T) {
	agg := NewAggregator(DefaultSettings())
	now := time.Now()

	answers := []model.Answer{
		answerAt(1, 10, model.DifficultyMedium, false, now),
		answerAt(1, 10, model.DifficultyMedium, false, now),
	}

	// Two attempts sit below the default floor of three.
	assert.Empty(t, agg.Profile(answers, now).WeakTopics)

	updated := DefaultSettings()
	updated.MinTopicAttempts = 2
	agg.UpdateSettings(updated)

	assert.Len(t, agg.Profile(answers, now).WeakTopics, 1)
}
