package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/webintel/wikisearch/docstore"
	"github.com/webintel/wikisearch/linkgraph"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/textindexer/index"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// dump is the serialized form of a snapshot. The three derived structures
// travel together with the document store as one unit so an importer can
// never pair an index with a mismatched corpus.
type dump struct {
	ID              uuid.UUID             `json:"id"`
	BuiltAt         time.Time             `json:"builtAt"`
	TokenizerConfig tokenizer.Config      `json:"tokenizerConfig"`
	Documents       []*docstore.Document  `json:"documents"`
	Index           *index.InvertedIndex  `json:"index"`
	Graph           *linkgraph.Graph      `json:"graph"`
	Authority       *pagerank.Authority   `json:"authority"`
}

// Export serializes the snapshot for restart-without-recrawl persistence.
func Export(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(dump{
		ID:              snap.ID,
		BuiltAt:         snap.BuiltAt,
		TokenizerConfig: snap.TokenizerConfig,
		Documents:       snap.Store.Documents(),
		Index:           snap.Index,
		Graph:           snap.Graph,
		Authority:       snap.Authority,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot export: %w", err)
	}

	return data, nil
}

// Import reconstructs a snapshot previously produced by Export. The provided
// tokenizer config must match the one the snapshot was built with; importing
// an index built under different normalization rules fails with
// ErrTokenizerMismatch.
func Import(data []byte, tokCfg tokenizer.Config) (*Snapshot, error) {
	var d dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("snapshot import: %w", err)
	}

	if d.TokenizerConfig != tokCfg {
		return nil, fmt.Errorf("snapshot import: %w", ErrTokenizerMismatch)
	}

	store, err := docstore.NewFromDocuments(d.Documents)
	if err != nil {
		return nil, fmt.Errorf("snapshot import: %w", err)
	}

	if d.Index == nil || d.Authority == nil || d.Graph == nil {
		return nil, fmt.Errorf("snapshot import: incomplete snapshot data")
	}

	if d.Index.Postings == nil {
		d.Index.Postings = make(map[string]index.PostingList)
	}

	return &Snapshot{
		ID:              d.ID,
		BuiltAt:         d.BuiltAt,
		Store:           store,
		Index:           d.Index,
		Graph:           d.Graph,
		Authority:       d.Authority,
		TokenizerConfig: d.TokenizerConfig,
	}, nil
}
