package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/docstore"
)

const defaultMaxPages = 250

// IngestorConfig encapsulates the settings for an Ingestor.
type IngestorConfig struct {
	// Source used to fetch and parse pages.
	Source PageSource

	// MaxPages bounds the size of one crawl batch, seed included. If not
	// specified, a default value of 250 is used.
	MaxPages int

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *IngestorConfig) validate() error {
	var err error

	if cfg.Source == nil {
		err = multierror.Append(err, fmt.Errorf("page source not provided"))
	}

	if cfg.MaxPages < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for max pages, must be >= 0",
		))
	} else if cfg.MaxPages == 0 {
		cfg.MaxPages = defaultMaxPages
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}

// Ingestor crawls a seed article and the articles it links to, and loads the
// batch into a fresh document store.
type Ingestor struct {
	cfg IngestorConfig
}

// NewIngestor returns an Ingestor using the provided config options.
func NewIngestor(cfg IngestorConfig) (*Ingestor, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ingestor: config validation failed: %w", err)
	}

	return &Ingestor{cfg: cfg}, nil
}

// Ingest fetches the seed page plus every page it links to (up to the
// configured batch size) and returns a populated document store with link
// titles resolved to document IDs. A seed fetch failure aborts the whole
// batch; failures on individual outbound pages are logged and skipped so one
// dead link cannot sink a build. Link titles that resolve to no crawled page
// are dropped.
func (ing *Ingestor) Ingest(
	ctx context.Context, seed string,
) (*docstore.Store, error) {

	first, err := ing.cfg.Source.FetchAndParse(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("ingest: seed page %q: %w", seed, err)
	}

	store := docstore.New()
	store.AddDocument(first.Title, first.Text, first.OutboundLinks)

	ing.cfg.Logger.WithFields(logrus.Fields{
		"seed":           first.Title,
		"outbound_links": len(first.OutboundLinks),
	}).Info("fetched seed page")

	var skipped int
	for _, title := range first.OutboundLinks {
		if store.Count() >= ing.cfg.MaxPages {
			break
		}

		if _, exists := store.LookupTitle(title); exists {
			continue
		}

		page, err := ing.cfg.Source.FetchAndParse(ctx, title)
		if err != nil {
			// A cancelled crawl aborts the batch; a single broken page
			// does not.
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}

			skipped++
			ing.cfg.Logger.WithFields(logrus.Fields{
				"page": title,
				"err":  err,
			}).Warn("skipping page that could not be fetched")

			continue
		}

		store.AddDocument(page.Title, page.Text, page.OutboundLinks)
	}

	droppedLinks := store.ResolveLinks()

	ing.cfg.Logger.WithFields(logrus.Fields{
		"document_count": store.Count(),
		"skipped_pages":  skipped,
		"dropped_links":  droppedLinks,
	}).Info("completed crawl batch")

	return store, nil
}
