package engine

import (
	"math"
	"sort"
	"sync"
	"time"

	"lgs_prep_backend/internal/model"
)

// Settings are the tunable constants of the mastery computation. They are
// configuration, loaded from the config file and hot-reloadable; nothing
// in the aggregator hides a magic number.
type Settings struct {
	// RecencyHalfLifeDays halves an answer's weight for every this many
	// days of age.
	RecencyHalfLifeDays float64 `mapstructure:"recency_half_life_days"`
	// WeakAccuracyThreshold marks a topic weak below this accuracy.
	WeakAccuracyThreshold float64 `mapstructure:"weak_accuracy_threshold"`
	// MinTopicAttempts is the sample floor: a topic attempted fewer times
	// is insufficiently sampled, not weak.
	MinTopicAttempts int `mapstructure:"min_topic_attempts"`
	// MasteredThreshold excludes already-mastered topics from focus
	// recommendations.
	MasteredThreshold float64 `mapstructure:"mastered_threshold"`
	// MaxFocusTopics caps the recommended focus list.
	MaxFocusTopics int `mapstructure:"max_focus_topics"`
	// RecentWindowDays and RecentWindowMax bound the dashboard's
	// recent-activity window.
	RecentWindowDays int `mapstructure:"recent_window_days"`
	RecentWindowMax  int `mapstructure:"recent_window_max"`
}

func DefaultSettings() Settings {
	return Settings{
		RecencyHalfLifeDays:   14,
		WeakAccuracyThreshold: 0.6,
		MinTopicAttempts:      3,
		MasteredThreshold:     0.85,
		MaxFocusTopics:        5,
		RecentWindowDays:      7,
		RecentWindowMax:       50,
	}
}

// MasteryProfile is derived from answer history alone and is always
// reconstructable from the ledger; nothing here is a stored counter.
type MasteryProfile struct {
	SubjectMastery map[uint]float64
	TopicMastery   map[uint]float64
	TopicStats     []model.TopicStat
	WeakTopics     []model.TopicStat
	FocusTopics    []model.TopicStat
}

// Aggregator computes mastery profiles from answer history. It holds no
// per-student state and is safe for concurrent readers.
type Aggregator struct {
	mu       sync.RWMutex
	settings Settings
}

func NewAggregator(settings Settings) *Aggregator {
	return &Aggregator{settings: settings}
}

// Settings returns the current tuning constants.
func (a *Aggregator) Settings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// UpdateSettings swaps the tuning constants, used by config hot reload.
func (a *Aggregator) UpdateSettings(settings Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = settings
}

// Profile aggregates a student's answers into mastery scores and topic
// rankings. An empty history yields empty maps and lists.
func (a *Aggregator) Profile(answers []model.Answer, now time.Time) *MasteryProfile {
	cfg := a.Settings()

	profile := &MasteryProfile{
		SubjectMastery: map[uint]float64{},
		TopicMastery:   map[uint]float64{},
		TopicStats:     []model.TopicStat{},
		WeakTopics:     []model.TopicStat{},
		FocusTopics:    []model.TopicStat{},
	}
	if len(answers) == 0 {
		return profile
	}

	type bucket struct {
		weighted        float64
		weightedCorrect float64
		attempts        int
		correct         int
	}
	subjects := map[uint]*bucket{}
	topics := map[uint]*bucket{}
	topicSubject := map[uint]uint{}

	for _, ans := range answers {
		// Recent answers and harder questions carry more weight, so a
		// student who recently improved outranks the same lifetime
		// accuracy achieved long ago.
		age := now.Sub(ans.CreatedAt).Hours() / 24
		if age < 0 {
			age = 0
		}
		w := ans.Difficulty.Weight() * math.Pow(0.5, age/cfg.RecencyHalfLifeDays)

		sb := subjects[ans.SubjectID]
		if sb == nil {
			sb = &bucket{}
			subjects[ans.SubjectID] = sb
		}
		tb := topics[ans.TopicID]
		if tb == nil {
			tb = &bucket{}
			topics[ans.TopicID] = tb
		}
		topicSubject[ans.TopicID] = ans.SubjectID

		for _, b := range []*bucket{sb, tb} {
			b.weighted += w
			b.attempts++
			if ans.Correct {
				b.weightedCorrect += w
				b.correct++
			}
		}
	}

	for id, b := range subjects {
		profile.SubjectMastery[id] = b.weightedCorrect / b.weighted
	}
	for id, b := range topics {
		profile.TopicMastery[id] = b.weightedCorrect / b.weighted
	}

	stats := make([]model.TopicStat, 0, len(topics))
	for id, b := range topics {
		stats = append(stats, model.TopicStat{
			TopicID:   id,
			SubjectID: topicSubject[id],
			Attempts:  b.attempts,
			Correct:   b.correct,
			Accuracy:  float64(b.correct) / float64(b.attempts),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].TopicID < stats[j].TopicID
	})
	profile.TopicStats = stats

	profile.WeakTopics = a.weakTopics(stats, cfg)
	profile.FocusTopics = a.focusTopics(profile.WeakTopics, profile.TopicMastery, cfg)

	return profile
}

// weakTopics keeps topics below the accuracy threshold with enough
// attempts to trust the sample, worst accuracy first, the less-practiced
// topic winning ties so it gets surfaced sooner.
func (a *Aggregator) weakTopics(stats []model.TopicStat, cfg Settings) []model.TopicStat {
	weak := make([]model.TopicStat, 0)
	for _, st := range stats {
		if st.Attempts >= cfg.MinTopicAttempts && st.Accuracy < cfg.WeakAccuracyThreshold {
			weak = append(weak, st)
		}
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].Accuracy != weak[j].Accuracy {
			return weak[i].Accuracy < weak[j].Accuracy
		}
		if weak[i].Attempts != weak[j].Attempts {
			return weak[i].Attempts < weak[j].Attempts
		}
		return weak[i].TopicID < weak[j].TopicID
	})
	return weak
}

func (a *Aggregator) focusTopics(weak []model.TopicStat, topicMastery map[uint]float64, cfg Settings) []model.TopicStat {
	focus := make([]model.TopicStat, 0, cfg.MaxFocusTopics)
	for _, st := range weak {
		if topicMastery[st.TopicID] >= cfg.MasteredThreshold {
			continue
		}
		focus = append(focus, st)
		if len(focus) >= cfg.MaxFocusTopics {
			break
		}
	}
	return focus
}
