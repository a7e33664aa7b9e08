/*
	queryengine package answers ranked keyword queries against a published
	snapshot. A query is tokenized with the index-time tokenizer, candidate
	documents are the AND-intersection of the query terms' posting lists,
	and each candidate is scored by a weighted sum of four min-max
	normalized signals: term frequency, first-mention location, term
	proximity and link-graph authority.

	The engine is stateless between calls; it only reads the immutable
	snapshot passed to Search.
*/

package queryengine

import (
	"fmt"
	"sort"
	"time"

	"github.com/webintel/wikisearch/snapshot"
	"github.com/webintel/wikisearch/textindexer/index"
)

// Hit is a single ranked search result.
type Hit struct {
	DocID int     `json:"documentId"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Result is the ordered outcome of one query. Scores are non-increasing by
// position; ties are broken by document ID ascending.
type Result struct {
	// Duration of the query computation.
	Duration time.Duration `json:"-"`

	// HitCount is the number of candidate documents that matched every
	// query term.
	HitCount int `json:"hitCount"`

	// Hits ordered by combined score descending.
	Hits []Hit `json:"results"`
}

// Engine executes queries. It holds configuration only; the snapshot to
// query is bound per call, which keeps concurrent searches against swapped
// snapshots trivially safe.
type Engine struct {
	cfg Config
}

// New returns an Engine using the provided config options.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("query engine: config validation failed: %w", err)
	}

	return &Engine{cfg: cfg}, nil
}

// Search tokenizes queryText, assembles the candidate set and returns the
// ranked result list. An empty or all-stop-word query and a query with no
// matching documents both yield an empty result, never an error.
func (e *Engine) Search(snap *snapshot.Snapshot, queryText string) Result {
	started := e.cfg.Clock.Now()

	terms := dedupe(e.cfg.Tokenizer.Tokenize(queryText))

	hits := e.rank(snap, terms)

	return Result{
		Duration: e.cfg.Clock.Now().Sub(started),
		HitCount: len(hits),
		Hits:     hits,
	}
}

func (e *Engine) rank(snap *snapshot.Snapshot, terms []string) []Hit {
	if len(terms) == 0 {
		return []Hit{}
	}

	// AND semantics: a document is a candidate only if it contains every
	// query term at least once. Intersecting from the rarest term on
	// keeps the merge cheap.
	lists := make([]index.PostingList, len(terms))
	for i, term := range terms {
		lists[i] = snap.Index.Lookup(term)
		if len(lists[i]) == 0 {
			return []Hit{}
		}
	}

	sort.Slice(lists, func(i, j int) bool { return len(lists[i]) < len(lists[j]) })

	candidates := lists[0]
	for _, list := range lists[1:] {
		candidates = candidates.Intersect(list)
		if len(candidates) == 0 {
			return []Hit{}
		}
	}

	// Collect the per-term postings for every candidate, then compute the
	// raw signals.
	signals := make([]signalSet, len(candidates))
	for i, candidate := range candidates {
		postings := make([]index.Posting, len(terms))
		for j, term := range terms {
			posting, found := snap.Index.Lookup(term).Find(candidate.DocID)
			if !found {
				// Unreachable after intersection; kept as a guard so a
				// broken index cannot panic the scorer.
				continue
			}

			postings[j] = posting
		}

		signals[i] = signalSet{
			frequency: frequencyScore(postings),
			location:  locationScore(postings),
			proximity: proximityScore(postings, e.cfg.ProximityWindow),
			authority: snap.Authority.Score(candidate.DocID),
		}
	}

	normalize(signals)

	hits := make([]Hit, len(candidates))
	for i, candidate := range candidates {
		title := ""
		if doc, err := snap.Store.Get(candidate.DocID); err == nil {
			title = doc.Title
		}

		hits[i] = Hit{
			DocID: candidate.DocID,
			Title: title,
			Score: signals[i].combined(e.cfg.Weights),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}

		return hits[i].DocID < hits[j].DocID
	})

	return hits
}

// dedupe removes repeated query terms while preserving first-seen order.
func dedupe(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]

	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}

		seen[term] = struct{}{}
		out = append(out, term)
	}

	return out
}
