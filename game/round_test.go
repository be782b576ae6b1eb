package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHint(t *testing.T) {
	assert.Equal(t, "_ _ _", buildHint("cat"))
	assert.Equal(t, "_ _ _   _ _ _ _ _", buildHint("ice cream"))
}

func TestHintCharMapping(t *testing.T) {
	assert.Equal(t, []int{0, 2, 4}, hintCharMapping("cat"))
	assert.Equal(t, []int{0, 2, 4, 8, 10, 12, 14, 16}, hintCharMapping("ice cream"))

	// Every mapped position is an underscore slot in the rendered hint.
	hint := buildHint("tightrope walking")
	for _, pos := range hintCharMapping("tightrope walking") {
		assert.Equal(t, byte('_'), hint[pos])
	}
}

func TestRevealHint_UncoversEveryLetterExactlyOnce(t *testing.T) {
	r := &Round{DurationSeconds: 80}
	r.Start("ice cream")

	letters := 8 // non-space characters
	for i := 0; i < letters; i++ {
		before := strings.Count(r.WordHint, "_")
		r.RevealHint(1)
		assert.Equal(t, before-1, strings.Count(r.WordHint, "_"))
	}

	assert.Zero(t, strings.Count(r.WordHint, "_"))
	assert.Equal(t, "i c e   c r e a m", r.WordHint)

	// Nothing left to reveal.
	assert.Equal(t, r.WordHint, r.RevealHint(1))
}

func TestCalculatePoints(t *testing.T) {
	r := &Round{DurationSeconds: 80}

	assert.Equal(t, 1000, r.CalculatePoints(0))
	assert.Equal(t, 100, r.CalculatePoints(80*10), "floor at 100")

	fast := r.CalculatePoints(5)
	slow := r.CalculatePoints(60)
	assert.Greater(t, fast, slow)
	assert.Less(t, fast, 1000)
	assert.GreaterOrEqual(t, slow, 100)
}

func TestRoundStart_SetsTimes(t *testing.T) {
	r := &Round{DurationSeconds: 80}
	r.Start("  Elephant ")

	require.True(t, r.IsActive)
	assert.Equal(t, "elephant", r.Word)
	assert.False(t, r.StartTime.IsZero())
	assert.InDelta(t, 80, r.EndTime.Sub(r.StartTime).Seconds(), 0.001)
	assert.InDelta(t, 80, r.TimeRemaining(), 1.0)
	assert.False(t, r.IsExpired())
}
