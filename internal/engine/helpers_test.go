package engine

import (
	"math/rand"
	"time"

	"lgs_prep_backend/internal/model"
)

// In-memory collaborators for exercising the engine without a database.

type fakeBank struct {
	questions []model.Question
}

func (b *fakeBank) FindEligible(scope Scope, excluding []uint) ([]model.Question, error) {
	skip := make(map[uint]bool, len(excluding))
	for _, id := range excluding {
		skip[id] = true
	}

	var out []model.Question
	for _, q := range b.questions {
		if skip[q.ID] {
			continue
		}
		if scope.SubjectID != nil && q.SubjectID != *scope.SubjectID {
			continue
		}
		if scope.TopicID != nil && q.TopicID != *scope.TopicID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (b *fakeBank) Get(questionID uint) (*model.Question, error) {
	for i := range b.questions {
		if b.questions[i].ID == questionID {
			q := b.questions[i]
			return &q, nil
		}
	}
	return nil, ErrNotFound
}

// fakeStore stores copies, like a real database: mutations the engine
// makes on a loaded session are invisible until Save succeeds.
type fakeStore struct {
	sessions map[uint]*model.ExamSession
	nextID   uint
	failSave error // returned by the next Save, then cleared
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[uint]*model.ExamSession{}, nextID: 1}
}

func cloneSession(sess *model.ExamSession) *model.ExamSession {
	cp := *sess
	cp.Items = append([]model.SessionItem(nil), sess.Items...)
	return &cp
}

func (s *fakeStore) Create(sess *model.ExamSession) error {
	sess.ID = s.nextID
	s.nextID++
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

func (s *fakeStore) Load(sessionID uint) (*model.ExamSession, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *fakeStore) Save(sess *model.ExamSession) error {
	if s.failSave != nil {
		err := s.failSave
		s.failSave = nil
		return err
	}
	for i := range sess.Items {
		if sess.Items[i].ID == 0 {
			sess.Items[i].ID = sess.ID*100 + uint(i) + 1
		}
	}
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

type fakeLedger struct {
	answers []model.Answer
}

func (l *fakeLedger) Append(answer *model.Answer) error {
	for _, a := range l.answers {
		if a.SessionItemID == answer.SessionItemID {
			return ErrInvalidSubmission
		}
	}
	answer.ID = uint(len(l.answers) + 1)
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now()
	}
	l.answers = append(l.answers, *answer)
	return nil
}

func (l *fakeLedger) History(studentID uint, window HistoryWindow) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range l.answers {
		if a.StudentID != studentID {
			continue
		}
		if !window.Since.IsZero() && a.CreatedAt.Before(window.Since) {
			continue
		}
		out = append(out, a)
	}
	if window.Limit > 0 && len(out) > window.Limit {
		out = out[len(out)-window.Limit:]
	}
	return out, nil
}

type fakeCurriculum struct {
	subjects []uint
}

func (c *fakeCurriculum) SubjectIDs() ([]uint, error) {
	return c.subjects, nil
}

func (c *fakeCurriculum) SubjectNames() (map[uint]string, error) {
	names := map[uint]string{}
	for _, id := range c.subjects {
		names[id] = "subject"
	}
	return names, nil
}

func (c *fakeCurriculum) TopicNames() (map[uint]string, error) {
	return map[uint]string{}, nil
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func question(id, subjectID, topicID uint, difficulty model.Difficulty) model.Question {
	q := model.Question{
		SubjectID:     subjectID,
		TopicID:       topicID,
		Difficulty:    difficulty,
		Text:          "q",
		CorrectChoice: "A",
	}
	q.ID = id
	return q
}

// bankForTopic builds n questions per difficulty for one subject/topic.
func bankForTopic(subjectID, topicID uint, perLevel int) *fakeBank {
	bank := &fakeBank{}
	id := uint(topicID * 1000)
	for _, d := range model.Difficulties() {
		for i := 0; i < perLevel; i++ {
			id++
			bank.questions = append(bank.questions, question(id, subjectID, topicID, d))
		}
	}
	return bank
}

func newTestEngine(bank *fakeBank, subjects []uint) (*SessionEngine, *fakeStore, *fakeLedger) {
	store := newFakeStore()
	ledger := &fakeLedger{}
	selector := NewSelector(bank, &fakeCurriculum{subjects: subjects}, testRand())
	return NewSessionEngine(bank, ledger, store, selector), store, ledger
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }
