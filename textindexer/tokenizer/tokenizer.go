/*
	tokenizer package normalizes raw page text into the term sequence used
	by both the index builder and the query engine. The same tokenizer
	configuration must be used on both sides; any change to the
	normalization rules invalidates an existing index.
*/

package tokenizer

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Config defines the normalization options for a Tokenizer.
type Config struct {
	// Stem enables Snowball (English) stemming of each emitted term.
	Stem bool `json:"stem" yaml:"stem"`
}

// Tokenizer converts text into an ordered sequence of normalized terms.
// Tokenizing the same text always yields the same sequence.
type Tokenizer struct {
	cfg Config
}

// New returns a Tokenizer using the provided config options.
func New(cfg Config) *Tokenizer {
	return &Tokenizer{cfg: cfg}
}

// Config returns the configuration the tokenizer was created with.
func (t *Tokenizer) Config() Config {
	return t.cfg
}

// Tokenize lowercases the provided text, splits it on any non-alphanumeric
// boundary, removes stop-words and returns the remaining terms in document
// order. A term's index in the returned slice is its position.
func (t *Tokenizer) Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(words))
	for _, word := range words {
		if _, isStop := stopWords[word]; isStop {
			continue
		}

		if t.cfg.Stem {
			word = english.Stem(word, false)
			if word == "" {
				continue
			}
		}

		terms = append(terms, word)
	}

	return terms
}
