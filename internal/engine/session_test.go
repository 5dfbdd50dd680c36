package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lgs_prep_backend/internal/model"
)

func TestStartRequiresScopeForTopicPractice(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	_, _, err := eng.Start(1, model.ModeAdaptiveTopicPractice, Scope{}, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidScope)

	_, _, err = eng.Start(1, model.ModeAdaptiveTopicPractice, Scope{SubjectID: uintPtr(1)}, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestStartRejectsBadMode(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	_, _, err := eng.Start(1, model.ExamMode("SPEED_RUN"), Scope{}, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestStartRejectsNonPositiveTarget(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	_, _, err := eng.Start(1, model.ModeAdaptiveTopicPractice, scope, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidScope)
}

// A scope with no eligible questions must fail the start without
// persisting anything; otherwise an unplayable IN_PROGRESS session with
// zero items lingers in the student's listings.
func TestStartEmptyBankLeavesNoSession(t *testing.T) {
	eng, store, _ := newTestEngine(&fakeBank{}, nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	_, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 10, nil)
	assert.ErrorIs(t, err, ErrNoEligibleItem)
	assert.Empty(t, store.sessions)
}

func TestStartServesFirstItemAtMedium(t *testing.T) {
	eng, store, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, first, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, first)

	assert.Equal(t, model.StatusInProgress, sess.Status)
	assert.Equal(t, model.DifficultyMedium, first.Difficulty)
	require.Len(t, sess.Items, 1)
	assert.Equal(t, 1, sess.Items[0].Sequence)
	assert.False(t, sess.Items[0].Answered)

	saved, err := store.Load(sess.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Items, 1)
}

func TestTeacherAssignedStartsAtEasy(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1)}
	sess, first, err := eng.Start(7, model.ModeTeacherAssigned, scope, 4, uintPtr(99))
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyEasy, first.Difficulty)
	assert.Equal(t, uintPtr(99), sess.AssignedByID)
}

// Three correct answers walk MEDIUM -> HARD -> VERY_HARD, the fourth item
// is served at VERY_HARD (or the nearest fallback), and a target of 4
// completes the session with exactly 4 ledger rows.
func TestAdaptiveRampScenario(t *testing.T) {
	eng, _, ledger := newTestEngine(bankForTopic(1, 10, 3), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, first, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyMedium, first.Difficulty)

	wantServed := []model.Difficulty{
		model.DifficultyHard,
		model.DifficultyVeryHard,
		model.DifficultyVeryHard,
	}
	for i, want := range wantServed {
		out, err := eng.SubmitAnswer(7, sess.ID, i+1, strPtr("A"), 30)
		require.NoError(t, err)
		assert.True(t, out.Correct)
		require.NotNil(t, out.NextQuestion, "item %d", i+2)
		assert.Equal(t, want, out.NextQuestion.Difficulty)
	}

	out, err := eng.SubmitAnswer(7, sess.ID, 4, strPtr("A"), 30)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Nil(t, out.NextQuestion)
	assert.Equal(t, model.StatusCompleted, out.Session.Status)
	assert.NotNil(t, out.Session.CompletedAt)
	assert.Equal(t, 4, out.Session.CorrectCount)
	assert.Len(t, ledger.answers, 4)
}

func TestDifficultyFloorHolds(t *testing.T) {
	eng, store, _ := newTestEngine(bankForTopic(1, 10, 5), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 10, nil)
	require.NoError(t, err)

	// Miss everything: MEDIUM -> EASY, then the floor holds.
	for i := 1; i <= 6; i++ {
		out, err := eng.SubmitAnswer(7, sess.ID, i, strPtr("B"), 30)
		require.NoError(t, err)
		assert.False(t, out.Correct)
	}

	saved, err := store.Load(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyEasy, saved.CurrentDifficulty)
	for _, d := range savedDifficulties(saved) {
		assert.True(t, d.Valid())
	}
}

func savedDifficulties(sess *model.ExamSession) []model.Difficulty {
	out := make([]model.Difficulty, len(sess.Items))
	for i, it := range sess.Items {
		out[i] = it.ServedDifficulty
	}
	return out
}

func TestNoDuplicateServedItems(t *testing.T) {
	eng, store, _ := newTestEngine(bankForTopic(1, 10, 5), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 20, nil)
	require.NoError(t, err)

	for i := 1; i <= 19; i++ {
		choice := "A"
		if i%2 == 0 {
			choice = "C"
		}
		out, err := eng.SubmitAnswer(7, sess.ID, i, &choice, 30)
		require.NoError(t, err)
		if out.Completed {
			break
		}
	}

	saved, err := store.Load(sess.ID)
	require.NoError(t, err)
	seen := map[uint]bool{}
	for _, it := range saved.Items {
		assert.False(t, seen[it.QuestionID], "question %d served twice", it.QuestionID)
		seen[it.QuestionID] = true
	}
}

func TestDuplicateSubmissionRejectedAndLedgerUnchanged(t *testing.T) {
	eng, _, ledger := newTestEngine(bankForTopic(1, 10, 3), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 4, nil)
	require.NoError(t, err)

	_, err = eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	require.NoError(t, err)
	require.Len(t, ledger.answers, 1)

	// Retried request with the stale sequence number.
	_, err = eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Len(t, ledger.answers, 1)

	// Sequence from the future is just as invalid.
	_, err = eng.SubmitAnswer(7, sess.ID, 5, strPtr("A"), 30)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Len(t, ledger.answers, 1)
}

func TestSubmitByAnotherStudentRejected(t *testing.T) {
	eng, _, ledger := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 4, nil)
	require.NoError(t, err)

	_, err = eng.SubmitAnswer(8, sess.ID, 1, strPtr("A"), 30)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Empty(t, ledger.answers)
}

// A save failure after the ledger commit leaves the item unanswered in
// the store. The retry then re-appends, and the ledger's one-answer-per-
// item rule must turn that into ErrInvalidSubmission rather than a raw
// storage error, with no second row.
func TestSubmitRetryAfterSaveFailure(t *testing.T) {
	eng, store, ledger := newTestEngine(bankForTopic(1, 10, 3), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 4, nil)
	require.NoError(t, err)

	store.failSave = errors.New("connection reset")
	_, err = eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	require.Error(t, err)
	require.Len(t, ledger.answers, 1)

	_, err = eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Len(t, ledger.answers, 1)
}

func TestSubmitUnknownSession(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	_, err := eng.SubmitAnswer(7, 999, 1, strPtr("A"), 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitAfterCompletionRejected(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 1, nil)
	require.NoError(t, err)

	out, err := eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	require.NoError(t, err)
	require.True(t, out.Completed)

	_, err = eng.SubmitAnswer(7, sess.ID, 2, strPtr("A"), 30)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

// Selector exhaustion mid-session ends it early with a partial result;
// the caller never sees an error.
func TestBankExhaustionCompletesEarly(t *testing.T) {
	bank := &fakeBank{}
	for i := uint(1); i <= 7; i++ {
		bank.questions = append(bank.questions, question(i, 1, 10, model.DifficultyMedium))
	}
	eng, _, ledger := newTestEngine(bank, nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 20, nil)
	require.NoError(t, err)

	var completed bool
	for i := 1; i <= 7; i++ {
		out, err := eng.SubmitAnswer(7, sess.ID, i, strPtr("B"), 30)
		require.NoError(t, err)
		completed = out.Completed
	}

	assert.True(t, completed)
	assert.Len(t, ledger.answers, 7)

	final, err := eng.store.Load(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, final.Status)
	assert.Len(t, final.Items, 7)
}

func TestUnansweredTimeoutRecordedIncorrect(t *testing.T) {
	eng, _, ledger := newTestEngine(bankForTopic(1, 10, 2), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 2, nil)
	require.NoError(t, err)

	out, err := eng.SubmitAnswer(7, sess.ID, 1, nil, 120)
	require.NoError(t, err)
	assert.False(t, out.Correct)
	require.Len(t, ledger.answers, 1)
	assert.Nil(t, ledger.answers[0].SelectedChoice)
	assert.False(t, ledger.answers[0].Correct)
}

func TestAbandonKeepsPartialAnswers(t *testing.T) {
	eng, _, ledger := newTestEngine(bankForTopic(1, 10, 3), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 10, nil)
	require.NoError(t, err)

	_, err = eng.SubmitAnswer(7, sess.ID, 1, strPtr("A"), 30)
	require.NoError(t, err)
	_, err = eng.SubmitAnswer(7, sess.ID, 2, strPtr("B"), 30)
	require.NoError(t, err)

	final, err := eng.Abandon(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, final.Status)
	assert.NotNil(t, final.CompletedAt)
	assert.Len(t, ledger.answers, 2)
	assert.Greater(t, final.EstimatedScore, 0.0)

	// Abandoning twice is invalid: COMPLETED is terminal.
	_, err = eng.Abandon(sess.ID)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
}

func TestFinalScoreWeightsDifficulty(t *testing.T) {
	eng, _, _ := newTestEngine(bankForTopic(1, 10, 3), nil)

	scope := Scope{SubjectID: uintPtr(1), TopicID: uintPtr(10)}
	sess, _, err := eng.Start(7, model.ModeAdaptiveTopicPractice, scope, 3, nil)
	require.NoError(t, err)

	var final *model.ExamSession
	for i := 1; i <= 3; i++ {
		out, err := eng.SubmitAnswer(7, sess.ID, i, strPtr("A"), 30)
		require.NoError(t, err)
		final = out.Session
	}

	// MEDIUM + HARD + VERY_HARD correct: 1.5 + 2 + 3.
	assert.InDelta(t, 6.5, final.TotalScore, 1e-9)
	assert.InDelta(t, EstimateLGSScore(6.5, 3), final.EstimatedScore, 1e-9)
}

func TestEstimateLGSScoreBounds(t *testing.T) {
	assert.InDelta(t, 100, EstimateLGSScore(0, 20), 1e-9)
	assert.InDelta(t, 500, EstimateLGSScore(60, 20), 1e-9)
	assert.InDelta(t, 100, EstimateLGSScore(5, 0), 1e-9)

	mid := EstimateLGSScore(30, 20)
	assert.Greater(t, mid, 100.0)
	assert.Less(t, mid, 500.0)
}
