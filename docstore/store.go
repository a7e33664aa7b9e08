/*
	docstore package implements the document store that owns the crawled
	corpus for a single snapshot. The store is populated once per crawl
	batch by a single writer and becomes effectively immutable afterwards;
	concurrent readers require no locking.
*/

package docstore

import (
	"fmt"
	"sort"
)

// Store holds the documents of one corpus snapshot. IDs are assigned densely
// starting at zero in insertion order.
type Store struct {
	docs       []*Document
	titleIndex map[string]int
}

// New creates an empty document store.
func New() *Store {
	return &Store{
		titleIndex: make(map[string]int),
	}
}

// NewFromDocuments re-creates a store from a previously exported document
// list. The documents must already carry dense, insertion-ordered IDs.
func NewFromDocuments(docs []*Document) (*Store, error) {
	s := New()
	for i, doc := range docs {
		if doc.ID != i {
			return nil, fmt.Errorf(
				"docstore: document %q has ID %d, expected %d", doc.Title, doc.ID, i,
			)
		}

		s.docs = append(s.docs, doc)
		s.titleIndex[doc.Title] = doc.ID
	}

	return s, nil
}

// AddDocument inserts a new document into the store and returns its assigned
// ID. Outbound links are recorded as titles; call ResolveLinks once the whole
// batch has been added to map them to document IDs.
func (s *Store) AddDocument(title, text string, linkTitles []string) int {
	id := len(s.docs)

	s.docs = append(s.docs, &Document{
		ID:         id,
		Title:      title,
		Text:       text,
		LinkTitles: linkTitles,
	})

	// First insertion wins so that IDs referenced by earlier documents
	// remain stable even if a duplicate title shows up in the batch.
	if _, exists := s.titleIndex[title]; !exists {
		s.titleIndex[title] = id
	}

	return id
}

// Get performs a document lookup by ID.
func (s *Store) Get(id int) (*Document, error) {
	if id < 0 || id >= len(s.docs) {
		return nil, fmt.Errorf("get document %d: %w", id, ErrNotFound)
	}

	return s.docs[id], nil
}

// Count returns the number of documents in the store.
func (s *Store) Count() int {
	return len(s.docs)
}

// LookupTitle returns the ID of the document with the provided title.
func (s *Store) LookupTitle(title string) (int, bool) {
	id, exists := s.titleIndex[title]

	return id, exists
}

// ForEach invokes the provided visitor for every document in ID order. It
// stops and returns the first error reported by the visitor.
func (s *Store) ForEach(visitFn func(doc *Document) error) error {
	for _, doc := range s.docs {
		if err := visitFn(doc); err != nil {
			return err
		}
	}

	return nil
}

// Documents returns the documents of the store in ID order. The returned
// slice is the store's backing storage and must be treated as read-only.
func (s *Store) Documents() []*Document {
	return s.docs
}

// ResolvedLinks returns the outbound document IDs recorded for the specified
// document. Unknown IDs yield an empty set.
func (s *Store) ResolvedLinks(id int) []int {
	if id < 0 || id >= len(s.docs) {
		return nil
	}

	return s.docs[id].Links
}

// ResolveLinks maps every document's outbound link titles to document IDs.
// Titles that do not resolve to a stored document are dropped; the total
// number of dropped links is returned so callers can log it. Self-links are
// dropped as well. Resolved IDs are de-duplicated and sorted ascending.
func (s *Store) ResolveLinks() int {
	var dropped int

	for _, doc := range s.docs {
		seen := make(map[int]struct{}, len(doc.LinkTitles))
		resolved := make([]int, 0, len(doc.LinkTitles))

		for _, title := range doc.LinkTitles {
			id, exists := s.titleIndex[title]
			if !exists {
				dropped++

				continue
			}

			if id == doc.ID {
				continue
			}

			if _, dup := seen[id]; dup {
				continue
			}

			seen[id] = struct{}{}
			resolved = append(resolved, id)
		}

		sort.Ints(resolved)
		doc.Links = resolved
	}

	return dropped
}
