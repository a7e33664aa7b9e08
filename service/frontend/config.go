package frontend

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/metrics"
	"github.com/webintel/wikisearch/queryengine"
	"github.com/webintel/wikisearch/snapshot"
)

// Config defines configurations for the front-end service.
type Config struct {
	// Handle to read the currently published snapshot from.
	Handle *snapshot.Handle

	// Engine that executes queries against a snapshot.
	Engine *queryengine.Engine

	// Address to listen on for incoming requests.
	ListenAddr string

	// Metrics to record query traffic with. If not defined, an unexported
	// registry will be used instead.
	Metrics *metrics.Metrics

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Handle == nil {
		err = multierror.Append(err, fmt.Errorf(
			"snapshot handle not provided",
		))
	}

	if cfg.Engine == nil {
		err = multierror.Append(err, fmt.Errorf("query engine not provided"))
	}

	if cfg.ListenAddr == "" {
		err = multierror.Append(err, fmt.Errorf(
			"listen address not provided",
		))
	}

	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
