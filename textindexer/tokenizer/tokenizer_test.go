package tokenizer_test

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

var _ = check.Suite(new(TokenizerTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type TokenizerTestSuite struct{}

func (s *TokenizerTestSuite) TestLowercaseAndPunctuation(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{})

	terms := tok.Tokenize("Cats, Dogs & other (small) animals!")
	c.Assert(terms, check.DeepEquals, []string{
		"cats", "dogs", "other", "small", "animals",
	})
}

func (s *TokenizerTestSuite) TestStopWordRemoval(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{})

	terms := tok.Tokenize("the cat is a small animal")
	c.Assert(terms, check.DeepEquals, []string{"cat", "small", "animal"})
}

func (s *TokenizerTestSuite) TestAllStopWordsYieldEmptySequence(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{})

	c.Assert(tok.Tokenize("the and of"), check.HasLen, 0)
	c.Assert(tok.Tokenize(""), check.HasLen, 0)
	c.Assert(tok.Tokenize("  \t\n"), check.HasLen, 0)
}

func (s *TokenizerTestSuite) TestDeterminism(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{})

	text := "Electric guitars were first designed in the early 1930s; " +
		"solid-body models followed."

	first := tok.Tokenize(text)
	for i := 0; i < 10; i++ {
		c.Assert(tok.Tokenize(text), check.DeepEquals, first)
	}
}

func (s *TokenizerTestSuite) TestDigitsAreRetained(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{})

	terms := tok.Tokenize("founded in 1984 by 2 engineers")
	c.Assert(terms, check.DeepEquals, []string{"founded", "1984", "2", "engineers"})
}

func (s *TokenizerTestSuite) TestStemming(c *check.C) {
	tok := tokenizer.New(tokenizer.Config{Stem: true})

	terms := tok.Tokenize("connection connected connecting")
	c.Assert(terms, check.HasLen, 3)

	// All three inflections must collapse to the same stem.
	c.Assert(terms[1], check.Equals, terms[0])
	c.Assert(terms[2], check.Equals, terms[0])
}

func (s *TokenizerTestSuite) TestConfigRoundTrip(c *check.C) {
	cfg := tokenizer.Config{Stem: true}

	tok := tokenizer.New(cfg)
	c.Assert(tok.Config(), check.Equals, cfg)
}
