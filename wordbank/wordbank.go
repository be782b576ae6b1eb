// Package wordbank owns the word catalogs, per-game used-word tracking and
// guess-closeness classification for the drawing game.
package wordbank

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Match classifies a guess against the secret word.
type Match int

const (
	MatchWrong Match = iota
	MatchClose
	MatchCorrect
)

const defaultSimilarityThreshold = 0.75

// Bank manages word selection and guess checking. Selection never consumes a
// word; only MarkWordUsed does, when the drawer actually picks one of the
// offered options, so unselected options stay eligible for future rounds.
//
// A single Bank is shared by every room in the process, so the used-word
// bookkeeping is guarded internally.
type Bank struct {
	locker deadlock.Mutex

	catalog             Catalog
	usedWords           map[uuid.UUID]map[string]struct{}
	similarityThreshold float64
}

// Options controls a single word-selection request.
type Options struct {
	Count           int
	Category        Category   // empty = all categories
	Difficulty      Difficulty // empty = all difficulties
	CustomWords     []string
	CustomWordsOnly bool
}

func New() *Bank {
	return NewWithCatalog(DefaultCatalog(), defaultSimilarityThreshold)
}

func NewWithCatalog(catalog Catalog, similarityThreshold float64) *Bank {
	if similarityThreshold < 0 {
		similarityThreshold = 0
	}
	if similarityThreshold > 1 {
		similarityThreshold = 1
	}
	return &Bank{
		catalog:             catalog,
		usedWords:           make(map[uuid.UUID]map[string]struct{}),
		similarityThreshold: similarityThreshold,
	}
}

// GetWordOptions picks opts.Count distinct words for a drawing round,
// excluding words already marked used for this game.
//
// Custom-only mode samples the host's pool; when the unused pool runs dry but
// the total pool still covers the request, already-used custom words are
// reused instead of failing. In mixed mode at least one unused custom word is
// guaranteed a slot whenever one exists and more than one option is wanted.
func (b *Bank) GetWordOptions(gameID uuid.UUID, opts Options) ([]string, error) {
	if opts.Count <= 0 {
		opts.Count = 3
	}

	b.locker.Lock()
	defer b.locker.Unlock()

	if opts.Category != "" {
		if _, ok := b.catalog[opts.Category]; !ok {
			return nil, &InvalidCategoryError{Category: opts.Category}
		}
	}

	used := b.usedWords[gameID]
	isUsed := func(w string) bool {
		_, ok := used[w]
		return ok
	}

	if opts.CustomWordsOnly && len(opts.CustomWords) > 0 {
		return pickCustomOnly(opts.CustomWords, opts.Count, isUsed)
	}

	available := b.availableWords(gameID, opts.Category, opts.Difficulty)

	if len(opts.CustomWords) > 0 {
		return pickMixed(opts.CustomWords, available, opts.Count, isUsed)
	}

	if len(available) < opts.Count {
		return nil, &InsufficientWordsError{Requested: opts.Count, Available: len(available)}
	}
	return sample(available, opts.Count), nil
}

func pickCustomOnly(customWords []string, count int, isUsed func(string) bool) ([]string, error) {
	valid := make([]string, 0, len(customWords))
	for _, w := range customWords {
		if w != "" {
			valid = append(valid, w)
		}
	}

	fresh := make([]string, 0, len(valid))
	stale := make([]string, 0, len(valid))
	for _, w := range valid {
		if isUsed(w) {
			stale = append(stale, w)
		} else {
			fresh = append(fresh, w)
		}
	}

	switch {
	case len(fresh) >= count:
		return sample(fresh, count), nil
	case len(valid) >= count:
		// Unused pool too small; backfill by reusing already-used words.
		selected := append([]string(nil), fresh...)
		remaining := count - len(selected)
		selected = append(selected, sample(stale, min(remaining, len(stale)))...)
		shuffle(selected)
		return selected, nil
	default:
		return nil, &InsufficientWordsError{Requested: count, Available: len(valid)}
	}
}

func pickMixed(customWords, available []string, count int, isUsed func(string) bool) ([]string, error) {
	freshCustom := make([]string, 0, len(customWords))
	for _, w := range customWords {
		if w != "" && !isUsed(w) {
			freshCustom = append(freshCustom, w)
		}
	}

	if len(freshCustom) == 0 || count == 1 {
		combined := dedupeFold(append(append([]string(nil), freshCustom...), available...))
		if len(combined) < count {
			return nil, &InsufficientWordsError{Requested: count, Available: len(combined)}
		}
		return sample(combined, count), nil
	}

	// Guarantee one custom word a slot, fill the rest from the catalog.
	customPick := sample(freshCustom, 1)

	customFold := make(map[string]struct{}, len(freshCustom))
	for _, w := range freshCustom {
		customFold[strings.ToLower(w)] = struct{}{}
	}
	defaults := make([]string, 0, len(available))
	for _, w := range available {
		if _, dup := customFold[strings.ToLower(w)]; !dup {
			defaults = append(defaults, w)
		}
	}

	remaining := count - 1
	if len(defaults) >= remaining {
		selected := append(customPick, sample(defaults, remaining)...)
		shuffle(selected)
		return selected, nil
	}

	combined := append(append([]string(nil), freshCustom...), defaults...)
	if len(combined) < count {
		return nil, &InsufficientWordsError{Requested: count, Available: len(combined)}
	}
	return sample(combined, count), nil
}

// MarkWordUsed consumes a word for the game session. Called when the drawer
// actually selects one of the offered words.
func (b *Bank) MarkWordUsed(gameID uuid.UUID, word string) {
	b.locker.Lock()
	defer b.locker.Unlock()

	if b.usedWords[gameID] == nil {
		b.usedWords[gameID] = make(map[string]struct{})
	}
	b.usedWords[gameID][word] = struct{}{}
}

// ResetGameWords clears the used-word tracking for a game.
func (b *Bank) ResetGameWords(gameID uuid.UUID) {
	b.locker.Lock()
	defer b.locker.Unlock()

	delete(b.usedWords, gameID)
}

// LoadCustomWords merges extra catalog entries, skipping case-insensitive
// duplicates within each category/difficulty cell.
func (b *Bank) LoadCustomWords(words Catalog) {
	b.locker.Lock()
	defer b.locker.Unlock()

	for cat, byDiff := range words {
		if b.catalog[cat] == nil {
			b.catalog[cat] = make(map[Difficulty][]string, len(byDiff))
		}
		for diff, list := range byDiff {
			existing := make(map[string]struct{}, len(b.catalog[cat][diff]))
			for _, w := range b.catalog[cat][diff] {
				existing[strings.ToLower(w)] = struct{}{}
			}
			for _, w := range list {
				if _, dup := existing[strings.ToLower(w)]; !dup {
					b.catalog[cat][diff] = append(b.catalog[cat][diff], w)
					existing[strings.ToLower(w)] = struct{}{}
				}
			}
		}
	}
}

// WordCount reports how many catalog words match the filters.
func (b *Bank) WordCount(category Category, difficulty Difficulty) int {
	b.locker.Lock()
	defer b.locker.Unlock()

	total := 0
	for cat, byDiff := range b.catalog {
		if category != "" && cat != category {
			continue
		}
		for diff, words := range byDiff {
			if difficulty != "" && diff != difficulty {
				continue
			}
			total += len(words)
		}
	}
	return total
}

func (b *Bank) availableWords(gameID uuid.UUID, category Category, difficulty Difficulty) []string {
	used := b.usedWords[gameID]

	var all []string
	for cat, byDiff := range b.catalog {
		if category != "" && cat != category {
			continue
		}
		for diff, words := range byDiff {
			if difficulty != "" && diff != difficulty {
				continue
			}
			all = append(all, words...)
		}
	}

	available := all[:0]
	for _, w := range all {
		if _, ok := used[w]; !ok {
			available = append(available, w)
		}
	}
	return available
}

func sample(pool []string, count int) []string {
	idx := rand.Perm(len(pool))[:count]
	out := make([]string, 0, count)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func shuffle(words []string) {
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

func dedupeFold(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		folded := strings.ToLower(w)
		if _, dup := seen[folded]; !dup {
			seen[folded] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
