package snapshot

import "errors"

var (
	// ErrNotPublished is returned when a snapshot is requested before any
	// build has completed. Callers must surface this as a
	// service-not-ready condition rather than serving an empty result.
	ErrNotPublished = errors.New("no snapshot published yet")

	// ErrTokenizerMismatch is returned when an imported snapshot was
	// built with a different tokenizer configuration than the engine is
	// running with. Querying such an index would silently miss terms.
	ErrTokenizerMismatch = errors.New("snapshot tokenizer config mismatch")
)
