package wordbank

import "strings"

// CheckGuess classifies a guess against the secret word. Both sides are
// trimmed and lowercased first; exact equality wins, then the close-match
// heuristics, then wrong.
func (b *Bank) CheckGuess(word, guess string) Match {
	w := strings.ToLower(strings.TrimSpace(word))
	g := strings.ToLower(strings.TrimSpace(guess))

	if w == g {
		return MatchCorrect
	}
	if b.isCloseMatch(w, g) {
		return MatchClose
	}
	return MatchWrong
}

func (b *Bank) isCloseMatch(word, guess string) bool {
	if similarityRatio(word, guess) >= b.similarityThreshold {
		return true
	}
	if isPluralVariation(word, guess) {
		return true
	}
	if isSingleCharDifference(word, guess) {
		return true
	}

	// Shared prefix covering at least 70% of the target word.
	if len(word) >= 4 && len(guess) >= 4 {
		prefixLen := int(float64(len(word)) * 0.7)
		if prefixLen <= len(guess) && word[:prefixLen] == guess[:prefixLen] {
			return true
		}
	}

	return false
}

// similarityRatio is 2*LCS/(len(a)+len(b)), the classic sequence-matcher
// ratio over bytes.
func similarityRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	lcs := prev[len(b)]
	return 2 * float64(lcs) / float64(len(a)+len(b))
}

func isPluralVariation(word, guess string) bool {
	if word+"s" == guess || word == guess+"s" {
		return true
	}
	if word+"es" == guess || word == guess+"es" {
		return true
	}
	if strings.HasSuffix(word, "y") && guess == word[:len(word)-1]+"ies" {
		return true
	}
	if strings.HasSuffix(guess, "y") && word == guess[:len(guess)-1]+"ies" {
		return true
	}
	return false
}

func isSingleCharDifference(word, guess string) bool {
	lenDiff := len(word) - len(guess)
	if lenDiff < -1 || lenDiff > 1 {
		return false
	}

	if lenDiff == 0 {
		differences := 0
		for i := 0; i < len(word); i++ {
			if word[i] != guess[i] {
				differences++
			}
		}
		return differences == 1
	}

	shorter, longer := word, guess
	if len(word) > len(guess) {
		shorter, longer = guess, word
	}
	for i := 0; i < len(longer); i++ {
		if longer[:i]+longer[i+1:] == shorter {
			return true
		}
	}
	return false
}
