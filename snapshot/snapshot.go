/*
	snapshot package binds one document store, one inverted index and one
	authority table into a single immutable unit. Snapshots are built
	off-line and published through an atomic handle: queries in flight see
	either the previously published snapshot or the new one in full, never
	a mix, and a failed rebuild leaves the published snapshot untouched.
*/

package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/webintel/wikisearch/docstore"
	"github.com/webintel/wikisearch/linkgraph"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/textindexer/index"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// Snapshot is one internally consistent view of the crawled corpus. All
// fields are read-only after construction.
type Snapshot struct {
	// ID uniquely identifies this snapshot for logging and health checks.
	ID uuid.UUID

	// BuiltAt records when the snapshot was assembled.
	BuiltAt time.Time

	// Store owns the documents of the snapshot.
	Store *docstore.Store

	// Index maps terms to positional posting lists over Store.
	Index *index.InvertedIndex

	// Graph holds the citation structure derived from Store.
	Graph *linkgraph.Graph

	// Authority holds the PageRank-style score for every document.
	Authority *pagerank.Authority

	// TokenizerConfig records the normalization rules the index was built
	// with. Queries must be tokenized with the same configuration.
	TokenizerConfig tokenizer.Config
}

// New assembles a snapshot from its parts and tags it with a fresh ID.
func New(
	store *docstore.Store,
	idx *index.InvertedIndex,
	graph *linkgraph.Graph,
	authority *pagerank.Authority,
	tokCfg tokenizer.Config,
) *Snapshot {

	return &Snapshot{
		ID:              uuid.New(),
		BuiltAt:         time.Now().UTC(),
		Store:           store,
		Index:           idx,
		Graph:           graph,
		Authority:       authority,
		TokenizerConfig: tokCfg,
	}
}

// Handle is an atomically swappable reference to the currently published
// snapshot. The zero value is ready to use and holds no snapshot.
type Handle struct {
	current atomic.Pointer[Snapshot]
}

// Get returns the currently published snapshot, or ErrNotPublished if no
// build has completed yet.
func (h *Handle) Get() (*Snapshot, error) {
	snap := h.current.Load()
	if snap == nil {
		return nil, ErrNotPublished
	}

	return snap, nil
}

// Publish atomically replaces the published snapshot. The previous snapshot
// keeps serving queries that already hold a reference to it.
func (h *Handle) Publish(snap *Snapshot) {
	h.current.Store(snap)
}
