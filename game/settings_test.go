package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestAddCustomWord_NormalizesAndDedupes(t *testing.T) {
	s := DefaultSettings()
	s.AddCustomWord("  Lighthouse ")
	s.AddCustomWord("lighthouse")
	s.AddCustomWord("LIGHTHOUSE")
	s.AddCustomWord("")
	s.AddCustomWord("kayak")

	assert.Equal(t, []string{"lighthouse", "kayak"}, s.CustomWords)

	s.RemoveCustomWord("Lighthouse")
	assert.Equal(t, []string{"kayak"}, s.CustomWords)

	s.RemoveCustomWord("not there")
	assert.Equal(t, []string{"kayak"}, s.CustomWords)
}

func TestSettingsClone_Independent(t *testing.T) {
	s := DefaultSettings()
	s.AddCustomWord("kayak")

	copied := s.clone()
	if diff := cmp.Diff(s, copied); diff != "" {
		t.Fatalf("clone differs from source (-want +got):\n%s", diff)
	}

	copied.CustomWords[0] = "mutated"
	copied.HintIntervals[0] = 99
	assert.Equal(t, "kayak", s.CustomWords[0])
	assert.Equal(t, 20, s.HintIntervals[0])
}
