package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	t.Run("Identity", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("control box", "control box"))
		assert.Equal(t, 1.0, Similarity("", ""))
	})

	t.Run("Symmetry", func(t *testing.T) {
		pairs := [][2]string{
			{"control box", "controller box"},
			{"teach pendant", "control box"},
			{"a", "abc"},
		}
		for _, pair := range pairs {
			assert.Equal(t, Similarity(pair[0], pair[1]), Similarity(pair[1], pair[0]),
				"Expected symmetric score for %q and %q", pair[0], pair[1])
		}
	})

	t.Run("Bounded in [0,1]", func(t *testing.T) {
		pairs := [][2]string{
			{"", "control box"},
			{"x", "y"},
			{"control box", "controller box"},
			{"same", "same"},
		}
		for _, pair := range pairs {
			score := Similarity(pair[0], pair[1])
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})

	t.Run("Disjoint strings score zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	})

	t.Run("Known ratio for near duplicate", func(t *testing.T) {
		// "control" (7) plus " box" (4) match out of 25 total characters.
		assert.InDelta(t, 0.88, Similarity("control box", "controller box"), 0.0001)
	})

	t.Run("Unrelated mentions stay below linking threshold", func(t *testing.T) {
		assert.Less(t, Similarity("teach pendant", "control box"), 0.85)
	})

	t.Run("Monotonic in edit distance for comparable lengths", func(t *testing.T) {
		base := "control box"
		oneEdit := "control bix"
		twoEdits := "comtrol bix"
		assert.Greater(t, Similarity(base, oneEdit), Similarity(base, twoEdits),
			"Expected fewer edits to score higher")
	})

	t.Run("Deterministic across runs", func(t *testing.T) {
		first := Similarity("robot arm", "robotic arm")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Similarity("robot arm", "robotic arm"))
		}
	})
}

func TestLongestCommonSubstring(t *testing.T) {
	t.Run("Finds the longest run", func(t *testing.T) {
		ai, bi, size := longestCommonSubstring([]rune("control box"), []rune("controller box"))
		assert.Equal(t, 0, ai)
		assert.Equal(t, 0, bi)
		assert.Equal(t, 7, size, "Expected to match \"control\"")
	})

	t.Run("Prefers the earliest position on ties", func(t *testing.T) {
		ai, bi, size := longestCommonSubstring([]rune("abab"), []rune("ab"))
		assert.Equal(t, 0, ai)
		assert.Equal(t, 0, bi)
		assert.Equal(t, 2, size)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, _, size := longestCommonSubstring(nil, []rune("abc"))
		assert.Equal(t, 0, size)
	})
}
