package docstore

// Document represents a single crawled page held by the store. Documents are
// assigned dense integer IDs in insertion order so that derived structures
// (posting lists, link graph adjacency, authority vectors) can be backed by
// plain slices indexed by document ID.
type Document struct {
	// ID of the document, assigned by the store at ingestion time.
	ID int `json:"id"`

	// Title of the page the document was built from.
	Title string `json:"title"`

	// Text holds the extracted plain-text content of the page.
	Text string `json:"text"`

	// LinkTitles lists the titles of the pages this document links to,
	// exactly as reported by the page source.
	LinkTitles []string `json:"linkTitles"`

	// Links lists the document IDs this document links to. It is populated
	// by ResolveLinks; titles that do not resolve to a stored document are
	// dropped.
	Links []int `json:"links"`
}
