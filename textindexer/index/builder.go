package index

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/webintel/wikisearch/docstore"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// Builder constructs an InvertedIndex from a document store. Documents are
// tokenized in parallel since each document's postings are independent; the
// per-term posting lists are merged by a single goroutine afterwards so that
// no posting list ever has concurrent writers.
type Builder struct {
	tokenizer *tokenizer.Tokenizer
	workers   int
}

// NewBuilder returns a Builder that normalizes document text with the
// provided tokenizer. If workers is not positive it defaults to the number
// of CPUs.
func NewBuilder(tok *tokenizer.Tokenizer, workers int) *Builder {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Builder{
		tokenizer: tok,
		workers:   workers,
	}
}

// docTerms holds the tokenization output for one document: term -> positions
// within the document's normalized term sequence.
type docTerms map[string][]int

// Build tokenizes every document in the store and assembles the inverted
// index. The overall cost is linear in the total number of tokens. Empty
// documents contribute no postings but are still counted so the index stays
// bound to the full snapshot.
func (b *Builder) Build(
	ctx context.Context, store *docstore.Store,
) (*InvertedIndex, error) {

	docs := store.Documents()
	perDoc := make([]docTerms, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, doc := range docs {
		doc := doc

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			terms := b.tokenizer.Tokenize(doc.Text)

			occurrences := make(docTerms)
			for pos, term := range terms {
				occurrences[term] = append(occurrences[term], pos)
			}

			perDoc[doc.ID] = occurrences

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single merge point. Iterating documents in ID order guarantees every
	// posting list ends up sorted by document ID with strictly increasing
	// positions inside each posting.
	idx := &InvertedIndex{
		Postings: make(map[string]PostingList),
		DocCount: len(docs),
	}

	for docID, occurrences := range perDoc {
		for term, positions := range occurrences {
			idx.Postings[term] = append(idx.Postings[term], Posting{
				DocID:     docID,
				Positions: positions,
			})
		}
	}

	return idx, nil
}
