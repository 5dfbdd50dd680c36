package engine

import (
	"lgs_prep_backend/internal/model"
)

// LGS placement scores run on a 100-500 scale.
const (
	lgsScoreFloor = 100.0
	lgsScoreCeil  = 500.0
)

// EstimateLGSScore maps a session's difficulty-weighted correct total onto
// the 100-500 LGS scale. The ceiling assumes every one of the target
// items answered correctly at VERY_HARD, so the estimate is monotonic in
// the weighted total and a partial session simply lands low.
func EstimateLGSScore(totalScore float64, targetCount int) float64 {
	if targetCount <= 0 {
		return lgsScoreFloor
	}
	max := model.DifficultyVeryHard.Weight() * float64(targetCount)
	ratio := totalScore / max
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return lgsScoreFloor + (lgsScoreCeil-lgsScoreFloor)*ratio
}
