package queryengine_test

import (
	"context"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/webintel/wikisearch/docstore"
	"github.com/webintel/wikisearch/linkgraph"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/queryengine"
	"github.com/webintel/wikisearch/snapshot"
	"github.com/webintel/wikisearch/textindexer/index"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

var _ = check.Suite(new(EngineTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type testDoc struct {
	title string
	text  string
	links []string
}

type EngineTestSuite struct {
	tok    *tokenizer.Tokenizer
	engine *queryengine.Engine
}

func (s *EngineTestSuite) SetUpSuite(c *check.C) {
	s.tok = tokenizer.New(tokenizer.Config{})

	engine, err := queryengine.New(queryengine.Config{Tokenizer: s.tok})
	c.Assert(err, check.IsNil)
	s.engine = engine
}

func (s *EngineTestSuite) buildSnapshot(c *check.C, docs []testDoc) *snapshot.Snapshot {
	store := docstore.New()
	for _, doc := range docs {
		store.AddDocument(doc.title, doc.text, doc.links)
	}
	store.ResolveLinks()

	idx, err := index.NewBuilder(s.tok, 2).Build(context.TODO(), store)
	c.Assert(err, check.IsNil)

	graph, _ := linkgraph.Build(store)

	calc, err := pagerank.NewCalculator(pagerank.Config{})
	c.Assert(err, check.IsNil)

	authority, err := calc.Calculate(context.TODO(), graph)
	c.Assert(err, check.IsNil)

	return snapshot.New(store, idx, graph, authority, s.tok.Config())
}

func (s *EngineTestSuite) TestEmptyQuery(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Cat", text: "cats are small animals"},
	})

	for _, query := range []string{"", "   ", "the and of"} {
		res := s.engine.Search(snap, query)
		c.Assert(res.HitCount, check.Equals, 0)
		c.Assert(res.Hits, check.HasLen, 0)
		c.Assert(res.Hits, check.NotNil)
	}
}

func (s *EngineTestSuite) TestUnknownTermYieldsEmptyResult(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Cat", text: "cats are small animals"},
	})

	res := s.engine.Search(snap, "unicorns")
	c.Assert(res.HitCount, check.Equals, 0)
	c.Assert(res.Hits, check.HasLen, 0)
}

func (s *EngineTestSuite) TestANDIntersection(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Both", text: "guitars and amplifiers sold here"},
		{title: "GuitarsOnly", text: "guitars sold here"},
		{title: "AmpsOnly", text: "amplifiers sold here"},
	})

	res := s.engine.Search(snap, "guitars amplifiers")
	c.Assert(res.HitCount, check.Equals, 1)
	c.Assert(res.Hits[0].Title, check.Equals, "Both")

	// A document matching only a subset is excluded, not down-ranked.
	for _, hit := range res.Hits {
		doc, err := snap.Store.Get(hit.DocID)
		c.Assert(err, check.IsNil)

		terms := s.tok.Tokenize(doc.Text)
		contains := func(want string) bool {
			for _, term := range terms {
				if term == want {
					return true
				}
			}

			return false
		}
		c.Assert(contains("guitars"), check.Equals, true)
		c.Assert(contains("amplifiers"), check.Equals, true)
	}
}

func (s *EngineTestSuite) TestDisjointTermsYieldEmptyResult(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "GuitarsOnly", text: "guitars sold here"},
		{title: "AmpsOnly", text: "amplifiers sold here"},
	})

	res := s.engine.Search(snap, "guitars amplifiers")
	c.Assert(res.HitCount, check.Equals, 0)
	c.Assert(res.Hits, check.HasLen, 0)
}

func (s *EngineTestSuite) TestScoresNonIncreasingWithDocIDTieBreak(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "A", text: "guitar guitar guitar music"},
		{title: "B", text: "music about the guitar"},
		{title: "C", text: "guitar music"},
		{title: "D", text: "the guitar"},
	})

	res := s.engine.Search(snap, "guitar")
	c.Assert(res.HitCount, check.Equals, 4)

	for i := 1; i < len(res.Hits); i++ {
		prev, curr := res.Hits[i-1], res.Hits[i]
		c.Assert(
			prev.Score >= curr.Score, check.Equals, true,
			check.Commentf("scores increased at position %d", i),
		)

		if prev.Score == curr.Score {
			c.Assert(prev.DocID < curr.DocID, check.Equals, true)
		}
	}
}

func (s *EngineTestSuite) TestAuthorityBreaksSymmetry(c *check.C) {
	// Both documents mention "cats" at the same position with the same
	// frequency, so frequency, location and proximity all have zero range
	// across the candidate set. Authority mass flowing from Cat's outbound
	// link must rank Animal first.
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Cat", text: "cats are small animals", links: []string{"Animal"}},
		{title: "Animal", text: "cats and dogs are animals"},
	})

	res := s.engine.Search(snap, "cats")
	c.Assert(res.HitCount, check.Equals, 2)
	c.Assert(res.Hits[0].Title, check.Equals, "Animal")
	c.Assert(res.Hits[1].Title, check.Equals, "Cat")
	c.Assert(res.Hits[0].Score >= res.Hits[1].Score, check.Equals, true)
}

func (s *EngineTestSuite) TestProximityFavorsTightClusters(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Tight", text: "zzz zzz zzz zzz electric guitar zzz"},
		{title: "Loose", text: "electric zzz zzz zzz zzz zzz guitar"},
	})

	// Give location and frequency no influence so proximity decides.
	engine, err := queryengine.New(queryengine.Config{
		Tokenizer: s.tok,
		Weights:   queryengine.Weights{Proximity: 1},
	})
	c.Assert(err, check.IsNil)

	res := engine.Search(snap, "electric guitar")
	c.Assert(res.HitCount, check.Equals, 2)
	c.Assert(res.Hits[0].Title, check.Equals, "Tight")
}

func (s *EngineTestSuite) TestDuplicateQueryTermsCollapse(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Cat", text: "cats are small animals"},
		{title: "Animal", text: "cats and dogs are animals"},
	})

	single := s.engine.Search(snap, "cats")
	repeated := s.engine.Search(snap, "cats cats cats")

	c.Assert(repeated.HitCount, check.Equals, single.HitCount)
	c.Assert(repeated.Hits, check.DeepEquals, single.Hits)
}

func (s *EngineTestSuite) TestResultReportsDuration(c *check.C) {
	snap := s.buildSnapshot(c, []testDoc{
		{title: "Cat", text: "cats are small animals"},
	})

	res := s.engine.Search(snap, "cats")
	c.Assert(res.Duration >= 0, check.Equals, true)
}
