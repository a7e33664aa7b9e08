package queryengine

import (
	"math"
	"sort"

	"github.com/webintel/wikisearch/textindexer/index"
)

// signalSet holds the four raw, non-negative ranking signals for one
// candidate document.
type signalSet struct {
	frequency float64
	location  float64
	proximity float64
	authority float64
}

// combined folds the (already normalized) signals into the final score.
func (s signalSet) combined(w Weights) float64 {
	return w.Frequency*s.frequency +
		w.Location*s.location +
		w.Proximity*s.proximity +
		w.Authority*s.authority
}

// frequencyScore sums log(1 + termCount) over the query terms, rewarding
// repetition with diminishing returns.
func frequencyScore(postings []index.Posting) float64 {
	var score float64
	for _, posting := range postings {
		score += math.Log(1 + float64(posting.Frequency()))
	}

	return score
}

// locationScore is the inverse of the earliest position at which any query
// term first appears in the document.
func locationScore(postings []index.Posting) float64 {
	first := math.MaxInt
	for _, posting := range postings {
		if len(posting.Positions) > 0 && posting.Positions[0] < first {
			first = posting.Positions[0]
		}
	}

	if first == math.MaxInt {
		return 0
	}

	return 1.0 / float64(1+first)
}

// proximityScore is the inverse of the minimum span (in token positions)
// covering one occurrence of every query term. Terms that never co-occur
// within the window score 0; the document stays in the result set since the
// AND filter already guaranteed term presence.
func proximityScore(postings []index.Posting, window int) float64 {
	span := minSpan(postings)
	if span == 0 || span > window {
		return 0
	}

	return 1.0 / float64(span)
}

// occurrence pairs a token position with the query term occupying it.
type occurrence struct {
	pos  int
	term int
}

// minSpan computes the width of the smallest position window containing at
// least one occurrence of every term. It returns 0 when any term has no
// occurrences. A single-term query always yields a span of 1.
func minSpan(postings []index.Posting) int {
	var events []occurrence
	for term, posting := range postings {
		if len(posting.Positions) == 0 {
			return 0
		}

		for _, pos := range posting.Positions {
			events = append(events, occurrence{pos: pos, term: term})
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	var (
		need    = len(postings)
		have    int
		counts  = make([]int, need)
		best    = math.MaxInt
		left    = 0
	)

	for right := 0; right < len(events); right++ {
		if counts[events[right].term] == 0 {
			have++
		}
		counts[events[right].term]++

		// Shrink from the left while the window still covers every term.
		for have == need {
			span := events[right].pos - events[left].pos + 1
			if span < best {
				best = span
			}

			counts[events[left].term]--
			if counts[events[left].term] == 0 {
				have--
			}
			left++
		}
	}

	if best == math.MaxInt {
		return 0
	}

	return best
}

// normalize rescales each signal to [0, 1] across the candidate set using
// min-max normalization so no signal dominates by raw magnitude alone. A
// signal with zero range across candidates contributes 0 from every
// document.
func normalize(signals []signalSet) {
	if len(signals) == 0 {
		return
	}

	for _, field := range []func(*signalSet) *float64{
		func(s *signalSet) *float64 { return &s.frequency },
		func(s *signalSet) *float64 { return &s.location },
		func(s *signalSet) *float64 { return &s.proximity },
		func(s *signalSet) *float64 { return &s.authority },
	} {
		lo, hi := math.MaxFloat64, -math.MaxFloat64
		for i := range signals {
			v := *field(&signals[i])
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}

		span := hi - lo
		for i := range signals {
			v := field(&signals[i])
			if span == 0 {
				*v = 0
			} else {
				*v = (*v - lo) / span
			}
		}
	}
}
