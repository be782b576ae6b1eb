// Package moderation blocks hate speech in chat messages, guesses and custom
// word submissions while leaving general profanity alone.
//
// The blocklist covers slur families with per-character alternation so that
// l33t-speak and punctuation substitutions still match. Every check runs
// against the lowercased input and against a copy with whitespace and
// punctuation collapsed out, which defeats s p a c e d - o u t evasion.
package moderation

import (
	"regexp"
	"strings"
)

const BlockedPlaceholder = "[Message blocked - hate speech not allowed]"

var hateTerms = []string{
	// Racial slurs (patterns, not raw slurs)
	`n[i1!|l]gg[e3]r`,
	`n[i1!|l]gg[a4@]`,
	`n[i1!|l]g+[e3]r`,
	`n[i1!|l]g+[a4@]`,
	`ch[i1!|l]nk`,
	`sp[i1!|l]c`,
	`sp[i1!|l]ck`,
	`w[e3]tb[a4@]ck`,
	`b[e3][a4@]n[e3]r`,
	`g[o0][o0]k`,
	`k[i1!|l]k[e3]`,
	`j[a4@]p`,
	`r[a4@]gh[e3][a4@]d`,
	`t[o0]w[e3]lh[e3][a4@]d`,
	`c[a4@]m[e3]lj[o0]ck[e3]y`,
	`p[a4@]k[i1!|l]`,
	`c[o0][o0]n`,
	`d[a4@]rk[i1!|l][e3]`,
	`p[o0]rch\s*m[o0]nk[e3]y`,
	`j[i1!|l]g[a4@]b[o0][o0]`,
	`cr[a4@]ck[e3]r`,
	// Homophobic slurs
	`f[a4@]gg?[o0]t`,
	`f[a4@]g`,
	`d[y]k[e3]`,
	`h[o0]m[o0]`,
	`qu[e3][e3]r`,
	`tr[a4@]nny`,
	`tr[a4@]nn[i1!|l][e3]`,
	`sh[e3]m[a4@]l[e3]`,
	`h[e3]-?sh[e3]`,
	`l[e3]sb[o0]`,
	// Transphobic terms
	`tr[o0][o0]n`,
	// Religious hate
	`k[a4@]ff[i1!|l]r`,
	// Ableist slurs
	`r[e3]t[a4@]rd`,
	`t[a4@]rd`,
	`sp[a4@]z`,
	`sp[a4@]st[i1!|l]c`,
	`m[o0]ng[o0]l[o0][i1!|l]d`,
	`m[o0]ng`,
	// Nazi / white supremacist terms
	`s[i1!|l][e3]g\s*h[e3][i1!|l]l`,
	`h[e3][i1!|l]l\s*h[i1!|l]tl[e3]r`,
	`wh[i1!|l]t[e3]\s*p[o0]w[e3]r`,
	`1488`,
	`14\s*88`,
}

// bareNaziCode matches a standalone "88". It is kept out of the default
// pattern set: ages, scores and years trip it constantly.
var bareNaziCode = regexp.MustCompile(`88`)

var collapseRe = regexp.MustCompile(`[\s._\-]+`)

func compilePatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+term))
	}
	return patterns
}

var defaultPatterns = compilePatterns(hateTerms)

// Filter is a stateless hate-speech classifier. The zero value is not
// usable; construct with New.
type Filter struct {
	patterns     []*regexp.Regexp
	flagBareCode bool
}

type Option func(*Filter)

// WithBareNaziCodes enables matching a standalone "88".
func WithBareNaziCodes() Option {
	return func(f *Filter) { f.flagBareCode = true }
}

func New(opts ...Option) *Filter {
	f := &Filter{patterns: defaultPatterns}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Normalize strips spaces, dots, dashes and underscores and lowercases, so
// "n i g g e r" and "n.i.g.g.e.r" collapse onto the plain form.
func Normalize(text string) string {
	return strings.ToLower(collapseRe.ReplaceAllString(text, ""))
}

func (f *Filter) ContainsHateSpeech(text string) bool {
	if text == "" {
		return false
	}

	lowered := strings.ToLower(text)
	collapsed := Normalize(text)

	for _, pattern := range f.patterns {
		if pattern.MatchString(lowered) || pattern.MatchString(collapsed) {
			return true
		}
	}

	if f.flagBareCode {
		if bareNaziCode.MatchString(lowered) || bareNaziCode.MatchString(collapsed) {
			return true
		}
	}

	return false
}

// FilterMessage replaces a flagged message with a placeholder and reports
// whether blocking occurred. Curse words pass through untouched.
func (f *Filter) FilterMessage(text string) (string, bool) {
	if f.ContainsHateSpeech(text) {
		return BlockedPlaceholder, true
	}
	return text, false
}

// ValidateCustomWord rejects empty submissions and hate speech. The returned
// string is a human-readable reason, empty when the word is acceptable.
func (f *Filter) ValidateCustomWord(word string) (bool, string) {
	if strings.TrimSpace(word) == "" {
		return false, "Word cannot be empty"
	}
	if f.ContainsHateSpeech(word) {
		return false, "Word contains prohibited content"
	}
	return true, ""
}

// ValidateCustomWords splits a submission into accepted and rejected words.
func (f *Filter) ValidateCustomWords(words []string) (valid, rejected []string) {
	for _, word := range words {
		if ok, _ := f.ValidateCustomWord(word); ok {
			valid = append(valid, word)
		} else {
			rejected = append(rejected, word)
		}
	}
	return valid, rejected
}
