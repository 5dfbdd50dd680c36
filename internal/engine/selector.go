package engine

import (
	"math/rand"

	"lgs_prep_backend/internal/model"
)

// Selector picks the next question for an in-progress session. It is a
// pure function of the session and the item bank: recording the choice is
// the session engine's job.
type Selector struct {
	bank       ItemBank
	curriculum CurriculumResolver
	rng        *rand.Rand
}

func NewSelector(bank ItemBank, curriculum CurriculumResolver, rng *rand.Rand) *Selector {
	return &Selector{
		bank:       bank,
		curriculum: curriculum,
		rng:        rng,
	}
}

// NextItem returns an eligible, not-yet-served question at the session's
// current difficulty, falling back to the nearest difficulty (easier
// first) and finally to any eligible question. Returns ErrNoEligibleItem
// when the eligible pool is empty.
func (s *Selector) NextItem(sess *model.ExamSession) (*model.Question, error) {
	scope, err := s.selectionScope(sess)
	if err != nil {
		return nil, err
	}

	excluding := sess.ServedQuestionIDs()

	candidates, err := s.bank.FindEligible(scope, excluding)
	if err != nil {
		return nil, err
	}

	// A full-sim subject may run dry before the session does; widen to the
	// whole bank rather than ending the exam early.
	if len(candidates) == 0 && sess.Mode == model.ModeFullLGSSim && scope.SubjectID != nil {
		candidates, err = s.bank.FindEligible(Scope{}, excluding)
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoEligibleItem
	}

	byLevel := make(map[model.Difficulty][]model.Question)
	for _, q := range candidates {
		byLevel[q.Difficulty] = append(byLevel[q.Difficulty], q)
	}

	for _, level := range preferenceOrder(sess.CurrentDifficulty) {
		pool := byLevel[level]
		if len(pool) == 0 {
			continue
		}
		q := pool[s.rng.Intn(len(pool))]
		return &q, nil
	}

	return nil, ErrNoEligibleItem
}

func (s *Selector) selectionScope(sess *model.ExamSession) (Scope, error) {
	if sess.Mode != model.ModeFullLGSSim {
		return Scope{SubjectID: sess.SubjectID, TopicID: sess.TopicID}, nil
	}

	subjects, err := s.curriculum.SubjectIDs()
	if err != nil {
		return Scope{}, err
	}
	if len(subjects) == 0 {
		return Scope{}, nil
	}

	// Round-robin over the subject order: item N comes from subject
	// N mod len(subjects), which converges on equal per-subject quotas.
	next := subjects[len(sess.Items)%len(subjects)]
	return Scope{SubjectID: &next}, nil
}

// preferenceOrder lists difficulties by distance from the target, the
// easier side winning ties, so fallback is deterministic.
func preferenceOrder(target model.Difficulty) []model.Difficulty {
	ladder := model.Difficulties()
	pos := 0
	for i, d := range ladder {
		if d == target {
			pos = i
			break
		}
	}

	order := make([]model.Difficulty, 0, len(ladder))
	for dist := 0; dist < len(ladder); dist++ {
		if pos-dist >= 0 {
			order = append(order, ladder[pos-dist])
		}
		if dist > 0 && pos+dist < len(ladder) {
			order = append(order, ladder[pos+dist])
		}
	}
	return order
}
