// Package normalize canonicalizes player name strings so that records
// from different providers can be compared.
package normalize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/patrickmn/go-cache"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer produces deterministic canonical keys for player names.
// Two spellings of the same player normalize to equal or near-equal
// keys; cross-player collisions are bounded and left to the fuzzy
// matcher's other signals.
type Normalizer struct {
	aliases    map[string]string
	keys       *cache.Cache
	diacritics transform.Transformer
}

// New creates a Normalizer with the default alias table
func New() *Normalizer {
	return NewWithAliases(defaultAliases())
}

// NewWithAliases creates a Normalizer with a custom alias table. Alias
// keys must already be in canonical form (lower case, no diacritics).
func NewWithAliases(aliases map[string]string) *Normalizer {
	return &Normalizer{
		aliases:    aliases,
		keys:       cache.New(cache.NoExpiration, 0),
		diacritics: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Normalize returns the canonical key for a player name. Pure with
// respect to its input; results are memoized.
func (n *Normalizer) Normalize(name string) string {
	if name == "" {
		return ""
	}
	if key, ok := n.keys.Get(name); ok {
		return key.(string)
	}
	key := n.canonicalize(name)
	n.keys.Set(name, key, cache.NoExpiration)
	return key
}

func (n *Normalizer) canonicalize(name string) string {
	s := strings.TrimSpace(name)

	// "Last, First" forms become "First Last" before tokenization
	if i := strings.Index(s, ","); i >= 0 {
		s = strings.TrimSpace(s[i+1:]) + " " + strings.TrimSpace(s[:i])
	}

	s = strings.ToLower(s)

	if stripped, _, err := transform.String(n.diacritics, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.':
			// abbreviation dots vanish: "R." -> "r"
		default:
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for i, tok := range tokens {
		if full, ok := n.aliases[tok]; ok {
			tokens[i] = full
		}
	}

	// Token order is provider-dependent ("Federer R." vs "R. Federer");
	// sorting gives an order-free key.
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// defaultAliases maps common nickname and abbreviation variants to the
// form used by the results archive
func defaultAliases() map[string]string {
	return map[string]string{
		"alex":    "alexander",
		"andy":    "andrew",
		"danny":   "daniel",
		"dominik": "dominic",
		"nick":    "nicholas",
		"stan":    "stanislas",
		"steve":   "steven",
	}
}
