package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyStepUpCapsAtVeryHard(t *testing.T) {
	d := DifficultyEasy
	for i := 0; i < 10; i++ {
		d = d.StepUp()
		assert.True(t, d.Valid())
	}
	assert.Equal(t, DifficultyVeryHard, d)
}

func TestDifficultyStepDownFloorsAtEasy(t *testing.T) {
	d := DifficultyVeryHard
	for i := 0; i < 10; i++ {
		d = d.StepDown()
		assert.True(t, d.Valid())
	}
	assert.Equal(t, DifficultyEasy, d)
}

func TestDifficultySteps(t *testing.T) {
	assert.Equal(t, DifficultyMedium, DifficultyEasy.StepUp())
	assert.Equal(t, DifficultyHard, DifficultyMedium.StepUp())
	assert.Equal(t, DifficultyHard, DifficultyVeryHard.StepDown())
	assert.Equal(t, DifficultyEasy, DifficultyEasy.StepDown())
}

func TestDifficultyWeights(t *testing.T) {
	assert.Equal(t, 1.0, DifficultyEasy.Weight())
	assert.Equal(t, 1.5, DifficultyMedium.Weight())
	assert.Equal(t, 2.0, DifficultyHard.Weight())
	assert.Equal(t, 3.0, DifficultyVeryHard.Weight())
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyMedium.Valid())
	assert.False(t, Difficulty("IMPOSSIBLE").Valid())
}
