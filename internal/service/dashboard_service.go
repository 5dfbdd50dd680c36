package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/pkg/logger"
)

const dashboardCacheTTL = 5 * time.Minute

// DashboardService builds the student dashboard from the answer ledger.
// Everything here is derived; there are no stored counters to drift.
type DashboardService struct {
	Ledger     engine.ResponseLedger
	Curriculum engine.CurriculumResolver
	Aggregator *engine.Aggregator
	Redis      *redis.Client
}

func NewDashboardService(ledger engine.ResponseLedger, curriculum engine.CurriculumResolver, aggregator *engine.Aggregator, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		Ledger:     ledger,
		Curriculum: curriculum,
		Aggregator: aggregator,
		Redis:      rdb,
	}
}

func (s *DashboardService) Summary(ctx context.Context, studentID uint) (*model.DashboardSummary, error) {
	cacheKey := fmt.Sprintf("dashboard:summary:%d", studentID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary model.DashboardSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	summary, err := s.build(studentID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, dashboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache dashboard summary", zap.Error(err))
			}
		}
	}

	return summary, nil
}

func (s *DashboardService) build(studentID uint) (*model.DashboardSummary, error) {
	now := time.Now()
	cfg := s.Aggregator.Settings()

	history, err := s.Ledger.History(studentID, engine.HistoryWindow{})
	if err != nil {
		return nil, err
	}
	profile := s.Aggregator.Profile(history, now)

	recent, err := s.Ledger.History(studentID, engine.HistoryWindow{
		Since: now.AddDate(0, 0, -cfg.RecentWindowDays),
		Limit: cfg.RecentWindowMax,
	})
	if err != nil {
		return nil, err
	}

	recentCorrect := 0
	for _, ans := range recent {
		if ans.Correct {
			recentCorrect++
		}
	}
	recentAccuracy := 0.0
	if len(recent) > 0 {
		recentAccuracy = float64(recentCorrect) / float64(len(recent))
	}

	subjectNames, err := s.Curriculum.SubjectNames()
	if err != nil {
		return nil, err
	}
	topicNames, err := s.Curriculum.TopicNames()
	if err != nil {
		return nil, err
	}

	subjectMastery := make(map[string]float64, len(profile.SubjectMastery))
	for id, mastery := range profile.SubjectMastery {
		name := subjectNames[id]
		if name == "" {
			name = fmt.Sprintf("subject:%d", id)
		}
		subjectMastery[name] = mastery
	}

	return &model.DashboardSummary{
		RecentSolved:   len(recent),
		RecentAccuracy: recentAccuracy,
		SubjectMastery: subjectMastery,
		WeakTopics:     withTopicNames(profile.WeakTopics, topicNames),
		FocusTopics:    withTopicNames(profile.FocusTopics, topicNames),
	}, nil
}

func withTopicNames(stats []model.TopicStat, names map[uint]string) []model.TopicStat {
	out := make([]model.TopicStat, len(stats))
	for i, st := range stats {
		st.TopicName = names[st.TopicID]
		out[i] = st
	}
	return out
}
