/*
	index package implements the positional inverted index at the heart of
	the search engine. The index maps every normalized term to a posting
	list ordered by document ID; each posting records the positions at
	which the term occurs inside one document. An index is built once per
	corpus snapshot and is read-only afterwards.
*/

package index

import "sort"

// Posting records the occurrences of a term within a single document.
type Posting struct {
	// DocID of the document containing the term.
	DocID int `json:"docId"`

	// Positions where the term occurs, strictly increasing. Positions are
	// indices into the document's normalized term sequence.
	Positions []int `json:"positions"`
}

// Frequency returns the number of occurrences of the term in the document.
func (p Posting) Frequency() int {
	return len(p.Positions)
}

// PostingList is the set of postings for one term, ordered by document ID. A
// document appears at most once per list, which keeps pairwise intersection a
// linear merge.
type PostingList []Posting

// Find returns the posting for the specified document ID.
func (l PostingList) Find(docID int) (Posting, bool) {
	i := sort.Search(len(l), func(i int) bool { return l[i].DocID >= docID })
	if i < len(l) && l[i].DocID == docID {
		return l[i], true
	}

	return Posting{}, false
}

// Intersect merges two docID-ordered posting lists and returns the postings
// of l limited to documents present in both.
func (l PostingList) Intersect(other PostingList) PostingList {
	out := make(PostingList, 0, min(len(l), len(other)))

	var i, j int
	for i < len(l) && j < len(other) {
		switch {
		case l[i].DocID < other[j].DocID:
			i++
		case l[i].DocID > other[j].DocID:
			j++
		default:
			out = append(out, l[i])
			i++
			j++
		}
	}

	return out
}

// InvertedIndex maps normalized terms to their posting lists for one corpus
// snapshot.
type InvertedIndex struct {
	// Postings keyed by term. Exposed for snapshot serialization; treated
	// as read-only everywhere else.
	Postings map[string]PostingList `json:"postings"`

	// DocCount is the number of documents the index was built from,
	// including documents that contributed no postings.
	DocCount int `json:"docCount"`
}

// Lookup returns the posting list for the specified term. A term that occurs
// in no document yields an empty list.
func (idx *InvertedIndex) Lookup(term string) PostingList {
	return idx.Postings[term]
}

// NumOfTerms returns the number of distinct terms in the index.
func (idx *InvertedIndex) NumOfTerms() int {
	return len(idx.Postings)
}

// DocFrequency returns the number of documents the specified term occurs in.
func (idx *InvertedIndex) DocFrequency(term string) int {
	return len(idx.Postings[term])
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
