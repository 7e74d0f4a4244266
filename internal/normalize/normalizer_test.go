package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBasic(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already canonical", input: "roger federer", expected: "federer roger"},
		{name: "mixed case", input: "Roger Federer", expected: "federer roger"},
		{name: "last comma first", input: "Federer, Roger", expected: "federer roger"},
		{name: "abbreviation dot", input: "Federer R.", expected: "federer r"},
		{name: "diacritics stripped", input: "Gaël Monfils", expected: "gael monfils"},
		{name: "hyphenated surname", input: "Jo-Wilfried Tsonga", expected: "jo tsonga wilfried"},
		{name: "extra whitespace", input: "  Rafael   Nadal ", expected: "nadal rafael"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizeOrderFree(t *testing.T) {
	n := New()
	if n.Normalize("Federer R.") != n.Normalize("R. Federer") {
		t.Fatalf("token order should not change the key")
	}
	if n.Normalize("Nadal, Rafael") != n.Normalize("Rafael Nadal") {
		t.Fatalf("comma reordering should match the plain form")
	}
}

func TestNormalizeAliases(t *testing.T) {
	n := New()
	assert.Equal(t, n.Normalize("Stanislas Wawrinka"), n.Normalize("Stan Wawrinka"))
	assert.Equal(t, n.Normalize("Alexander Zverev"), n.Normalize("Alex Zverev"))
}

func TestNormalizeCustomAliases(t *testing.T) {
	n := NewWithAliases(map[string]string{"rafa": "rafael"})
	assert.Equal(t, n.Normalize("Rafael Nadal"), n.Normalize("Rafa Nadal"))
}

func TestNormalizeMemoized(t *testing.T) {
	n := New()
	first := n.Normalize("Novak Djoković")
	second := n.Normalize("Novak Djoković")
	assert.Equal(t, first, second)
	assert.Equal(t, "djokovic novak", first)
}
