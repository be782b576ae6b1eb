package wordbank

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWordOptions_ReturnsDistinctWords(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	options, err := bank.GetWordOptions(gameID, Options{Count: 3})
	require.NoError(t, err)
	require.Len(t, options, 3)

	seen := map[string]struct{}{}
	for _, w := range options {
		seen[w] = struct{}{}
	}
	assert.Len(t, seen, 3)
}

func TestGetWordOptions_ExcludesUsedWords(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	options, err := bank.GetWordOptions(gameID, Options{Count: 3})
	require.NoError(t, err)

	used := options[0]
	bank.MarkWordUsed(gameID, used)

	for i := 0; i < 50; i++ {
		next, err := bank.GetWordOptions(gameID, Options{Count: 3})
		require.NoError(t, err)
		assert.NotContains(t, next, used)
	}
}

func TestGetWordOptions_SelectionDoesNotConsume(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	custom := []string{"alpha", "beta", "gamma"}
	options, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom, CustomWordsOnly: true})
	require.NoError(t, err)
	require.Len(t, options, 3)

	// Nothing marked used yet; the same pool must still satisfy the request
	// without falling back to reuse.
	again, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom, CustomWordsOnly: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, custom, again)
}

func TestGetWordOptions_CustomOnlyReuseFallback(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	// Pool of exactly count words: once one is consumed, the unused pool is
	// too small and the bank must backfill by reusing it.
	custom := []string{"alpha", "beta", "gamma"}
	bank.MarkWordUsed(gameID, "alpha")

	options, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom, CustomWordsOnly: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, custom, options)
}

func TestGetWordOptions_CustomOnlyInsufficient(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	_, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: []string{"alpha", "beta"}, CustomWordsOnly: true})

	var insufficient *InsufficientWordsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)
}

func TestGetWordOptions_MixedModeIncludesCustomWord(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	custom := []string{"zanzibar doodle"}
	for i := 0; i < 25; i++ {
		options, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom})
		require.NoError(t, err)
		require.Len(t, options, 3)
		assert.Contains(t, options, "zanzibar doodle")
	}
}

func TestGetWordOptions_InvalidCategory(t *testing.T) {
	bank := New()

	_, err := bank.GetWordOptions(uuid.New(), Options{Count: 3, Category: "dinosaurs"})

	var invalid *InvalidCategoryError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, Category("dinosaurs"), invalid.Category)
}

func TestGetWordOptions_CategoryFilter(t *testing.T) {
	bank := New()
	catalog := DefaultCatalog()

	animals := map[string]struct{}{}
	for _, words := range catalog[CategoryAnimals] {
		for _, w := range words {
			animals[w] = struct{}{}
		}
	}

	options, err := bank.GetWordOptions(uuid.New(), Options{Count: 3, Category: CategoryAnimals})
	require.NoError(t, err)
	for _, w := range options {
		assert.Contains(t, animals, w)
	}
}

func TestResetGameWords(t *testing.T) {
	bank := New()
	gameID := uuid.New()

	custom := []string{"alpha", "beta", "gamma"}
	bank.MarkWordUsed(gameID, "alpha")
	bank.MarkWordUsed(gameID, "beta")
	bank.MarkWordUsed(gameID, "gamma")

	_, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom, CustomWordsOnly: true})
	require.NoError(t, err) // reuse fallback path

	bank.ResetGameWords(gameID)

	options, err := bank.GetWordOptions(gameID, Options{Count: 3, CustomWords: custom, CustomWordsOnly: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, custom, options)
}

func TestCheckGuess(t *testing.T) {
	bank := New()

	testCases := []struct {
		word     string
		guess    string
		expected Match
	}{
		{"elephant", "elephant", MatchCorrect},
		{"elephant", "  Elephant ", MatchCorrect},
		{"cat", "cats", MatchClose},
		{"cats", "cat", MatchClose},
		{"berry", "berries", MatchClose},
		{"fox", "foxes", MatchClose},
		{"elephant", "elephent", MatchClose},
		{"elephant", "elephants", MatchClose},
		{"lighthouse", "lighthous", MatchClose},
		{"cat", "giraffe", MatchWrong},
		{"cat", "dog", MatchWrong},
		{"pizza", "", MatchWrong},
	}

	for _, tc := range testCases {
		t.Run(tc.word+"/"+tc.guess, func(t *testing.T) {
			assert.Equal(t, tc.expected, bank.CheckGuess(tc.word, tc.guess))
		})
	}
}

func TestCheckGuess_PrefixHeuristic(t *testing.T) {
	bank := New()

	// 70% shared prefix on words of length >= 4.
	assert.Equal(t, MatchClose, bank.CheckGuess("snowboard", "snowboarding"))
	assert.Equal(t, MatchWrong, bank.CheckGuess("cat", "catalog")) // too short for the prefix rule
}

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, similarityRatio("same", "same"))
	assert.Equal(t, 0.0, similarityRatio("", "abc"))
	assert.InDelta(t, 0.875, similarityRatio("elephant", "elephent"), 0.001)
}

func TestLoadCustomWords_Merge(t *testing.T) {
	bank := New()
	before := bank.WordCount(CategoryAnimals, DifficultyEasy)

	bank.LoadCustomWords(Catalog{
		CategoryAnimals: {DifficultyEasy: {"quokka", "CAT"}},
	})

	// "CAT" collides case-insensitively with the built-in "cat".
	assert.Equal(t, before+1, bank.WordCount(CategoryAnimals, DifficultyEasy))
}
