package queryengine

import (
	check "gopkg.in/check.v1"

	"github.com/webintel/wikisearch/textindexer/index"
)

// The test runner entry point lives in engine_test.go.
var _ = check.Suite(new(SignalsTestSuite))

type SignalsTestSuite struct{}

func posting(positions ...int) index.Posting {
	return index.Posting{Positions: positions}
}

func (s *SignalsTestSuite) TestMinSpanSingleTerm(c *check.C) {
	c.Assert(minSpan([]index.Posting{posting(4, 9)}), check.Equals, 1)
}

func (s *SignalsTestSuite) TestMinSpanAdjacentTerms(c *check.C) {
	// "electric" at 3, "guitar" at 4: the tightest window is two tokens.
	span := minSpan([]index.Posting{posting(3, 20), posting(4, 40)})
	c.Assert(span, check.Equals, 2)
}

func (s *SignalsTestSuite) TestMinSpanPicksTightestCluster(c *check.C) {
	span := minSpan([]index.Posting{
		posting(0, 100),
		posting(50, 103),
		posting(60, 101),
	})
	c.Assert(span, check.Equals, 4)
}

func (s *SignalsTestSuite) TestMinSpanMissingTerm(c *check.C) {
	c.Assert(minSpan([]index.Posting{posting(1), posting()}), check.Equals, 0)
}

func (s *SignalsTestSuite) TestProximityScoreWindowBound(c *check.C) {
	postings := []index.Posting{posting(0), posting(99)}

	c.Assert(proximityScore(postings, 50), check.Equals, 0.0)
	c.Assert(proximityScore(postings, 100), check.Equals, 1.0/100.0)
}

func (s *SignalsTestSuite) TestFrequencyScoreDiminishingReturns(c *check.C) {
	once := frequencyScore([]index.Posting{posting(0)})
	twice := frequencyScore([]index.Posting{posting(0, 1)})
	tenTimes := frequencyScore([]index.Posting{posting(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)})

	c.Assert(once > 0, check.Equals, true)
	c.Assert(twice > once, check.Equals, true)
	c.Assert(tenTimes-twice < 8*(twice-once), check.Equals, true)
}

func (s *SignalsTestSuite) TestLocationScore(c *check.C) {
	c.Assert(locationScore([]index.Posting{posting(0)}), check.Equals, 1.0)
	c.Assert(locationScore([]index.Posting{posting(9), posting(4)}), check.Equals, 1.0/5.0)
	c.Assert(locationScore([]index.Posting{posting()}), check.Equals, 0.0)
}

func (s *SignalsTestSuite) TestNormalizeMinMax(c *check.C) {
	signals := []signalSet{
		{frequency: 2, location: 0.5, proximity: 1, authority: 0.25},
		{frequency: 6, location: 0.5, proximity: 0, authority: 0.75},
		{frequency: 4, location: 0.5, proximity: 0, authority: 0.50},
	}

	normalize(signals)

	c.Assert(signals[0].frequency, check.Equals, 0.0)
	c.Assert(signals[1].frequency, check.Equals, 1.0)
	c.Assert(signals[2].frequency, check.Equals, 0.5)

	// Zero range: the signal contributes 0 from every candidate.
	for _, sig := range signals {
		c.Assert(sig.location, check.Equals, 0.0)
	}

	c.Assert(signals[0].authority, check.Equals, 0.0)
	c.Assert(signals[1].authority, check.Equals, 1.0)
}

func (s *SignalsTestSuite) TestCombinedUsesWeights(c *check.C) {
	sig := signalSet{frequency: 1, location: 1, proximity: 1, authority: 1}

	w := Weights{Frequency: 1, Location: 0.8, Proximity: 0.6, Authority: 0.5}
	c.Assert(sig.combined(w), check.Equals, 2.9)

	c.Assert(sig.combined(Weights{Authority: 2}), check.Equals, 2.0)
}
