/*
	crawler package populates the document store for a corpus snapshot. It
	is a collaborator of the indexing core: pages are obtained through the
	narrow PageSource capability and the core never sees HTML, HTTP or any
	other transport detail.
*/

package crawler

import "context"

// Page is the parsed form of a single crawled page.
type Page struct {
	// Title of the page in canonical form (spaces, not underscores).
	Title string

	// Text holds the extracted plain-text content of the page.
	Text string

	// OutboundLinks lists the canonical titles of pages this page links
	// to. Titles that were never crawled are dropped during link
	// resolution, not here.
	OutboundLinks []string
}

// PageSource is implemented by types that can fetch a page by identifier and
// parse it into its title, plain text and outbound link identifiers.
type PageSource interface {
	// FetchAndParse retrieves the page with the specified identifier.
	FetchAndParse(ctx context.Context, identifier string) (*Page, error)
}
