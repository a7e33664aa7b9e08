package indexbuilder

import (
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/crawler"
	"github.com/webintel/wikisearch/metrics"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/snapshot"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// Config encapsulates the settings for the index builder service.
type Config struct {
	// Ingestor used to crawl a fresh document batch for every build pass.
	Ingestor *crawler.Ingestor

	// Seed is the article title every crawl batch starts from.
	Seed string

	// Handle through which completed snapshots are published.
	Handle *snapshot.Handle

	// Tokenizer options used to build the inverted index. Queries against
	// the published snapshot must use the same options.
	Tokenizer tokenizer.Config

	// IndexWorkers used for parallel document tokenization. If not
	// specified, the index builder picks a value based on the number of
	// CPUs.
	IndexWorkers int

	// PageRank tunables for the authority computation.
	PageRank pagerank.Config

	// RebuildInterval between successive build passes. If not specified,
	// the service builds one snapshot at startup and then serves it
	// indefinitely.
	RebuildInterval time.Duration

	// SnapshotPath of the dump file used for restart-without-recrawl. If
	// not specified, snapshots are not persisted.
	SnapshotPath string

	// Clock used for rebuild scheduling. If not defined, the wall clock
	// will be used instead.
	Clock clock.Clock

	// Metrics to record build pass outcomes with. If not defined, an
	// unexported registry will be used instead.
	Metrics *metrics.Metrics

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Ingestor == nil {
		err = multierror.Append(err, fmt.Errorf("ingestor not provided"))
	}

	if cfg.Seed == "" {
		err = multierror.Append(err, fmt.Errorf("seed article not provided"))
	}

	if cfg.Handle == nil {
		err = multierror.Append(err, fmt.Errorf(
			"snapshot handle not provided",
		))
	}

	if cfg.RebuildInterval < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for rebuild interval, must be >= 0",
		))
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
