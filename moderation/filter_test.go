package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_AllowsProfanity(t *testing.T) {
	f := New()

	for _, text := range []string{
		"fuck this drawing",
		"that looks like shit",
		"damn you're fast",
		"hello world",
		"",
	} {
		assert.False(t, f.ContainsHateSpeech(text), "should allow: %q", text)
	}
}

func TestFilter_BlocksSlurs(t *testing.T) {
	f := New()

	for _, text := range []string{
		"you f4ggot",
		"sieg  heil",
		"white power",
		"1488",
		"14 88",
		"r3tard",
	} {
		assert.True(t, f.ContainsHateSpeech(text), "should block: %q", text)
	}
}

func TestFilter_CatchesSpacedOutEvasion(t *testing.T) {
	f := New()

	assert.True(t, f.ContainsHateSpeech("f a g g o t"))
	assert.True(t, f.ContainsHateSpeech("f.a.g.g.o.t"))
	assert.True(t, f.ContainsHateSpeech("t-r-o-o-n"))
}

func TestFilter_BareNaziCodeIsOptIn(t *testing.T) {
	plain := New()
	strict := New(WithBareNaziCodes())

	// Default must not flag ordinary numbers.
	assert.False(t, plain.ContainsHateSpeech("i was born in 1988"))
	assert.False(t, plain.ContainsHateSpeech("my score is 88"))

	assert.True(t, strict.ContainsHateSpeech("88"))
}

func TestFilterMessage(t *testing.T) {
	f := New()

	text, blocked := f.FilterMessage("nice drawing!")
	assert.False(t, blocked)
	assert.Equal(t, "nice drawing!", text)

	text, blocked = f.FilterMessage("heil hitler")
	assert.True(t, blocked)
	assert.Equal(t, BlockedPlaceholder, text)
}

func TestValidateCustomWord(t *testing.T) {
	f := New()

	ok, reason := f.ValidateCustomWord("")
	assert.False(t, ok)
	assert.Equal(t, "Word cannot be empty", reason)

	ok, reason = f.ValidateCustomWord("   ")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)

	ok, _ = f.ValidateCustomWord("shitstorm")
	assert.True(t, ok, "profanity is allowed as a custom word")

	ok, reason = f.ValidateCustomWord("f4ggot")
	assert.False(t, ok)
	assert.Equal(t, "Word contains prohibited content", reason)
}

func TestValidateCustomWords_Split(t *testing.T) {
	f := New()

	valid, rejected := f.ValidateCustomWords([]string{"dragon", "tr00n", "castle", ""})
	assert.Equal(t, []string{"dragon", "castle"}, valid)
	assert.Equal(t, []string{"tr00n", ""}, rejected)
}
