/*
	indexbuilder package implements the service that turns crawled pages
	into published snapshots. Every pass crawls a fresh document batch,
	builds the inverted index, the link graph and the authority scores,
	and atomically publishes the result; a failed pass leaves the
	previously published snapshot serving.
*/

package indexbuilder

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/linkgraph"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/service"
	"github.com/webintel/wikisearch/snapshot"
	"github.com/webintel/wikisearch/textindexer/index"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// Compile-time check for ensuring Service implements service.Service.
var _ service.Service = (*Service)(nil)

// Service builds and periodically rebuilds the search snapshot.
type Service struct {
	cfg        Config
	builder    *index.Builder
	calculator *pagerank.Calculator
}

// New returns an index builder service instance using the provided config
// options.
func New(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"index builder service: config validation failed: %w", err,
		)
	}

	calculator, err := pagerank.NewCalculator(cfg.PageRank)
	if err != nil {
		return nil, fmt.Errorf("index builder service: %w", err)
	}

	return &Service{
		cfg:        cfg,
		builder:    index.NewBuilder(tokenizer.New(cfg.Tokenizer), cfg.IndexWorkers),
		calculator: calculator,
	}, nil
}

// Name implements service.Service.
func (svc *Service) Name() string { return "index-builder" }

// Run implements service.Service. It publishes an initial snapshot, either
// restored from disk or built from a fresh crawl, and then rebuilds on the
// configured interval until the context gets cancelled. A startup without any
// publishable snapshot is an error; once a snapshot is published, rebuild
// failures are logged and the old snapshot keeps serving.
func (svc *Service) Run(ctx context.Context) error {
	svc.cfg.Logger.WithFields(logrus.Fields{
		"seed":             svc.cfg.Seed,
		"rebuild_interval": svc.cfg.RebuildInterval.String(),
	}).Info("starting service")
	defer svc.cfg.Logger.Info("stopped service")

	if !svc.restoreFromDisk() {
		if err := svc.buildPass(ctx); err != nil {
			return fmt.Errorf("initial snapshot build: %w", err)
		}
	}

	if svc.cfg.RebuildInterval == 0 {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-svc.cfg.Clock.After(svc.cfg.RebuildInterval):
			if err := svc.buildPass(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}

				svc.cfg.Logger.WithField("err", err).Error(
					"snapshot rebuild failed; keeping previous snapshot",
				)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// buildPass crawls a fresh batch and publishes the snapshot built from it.
func (svc *Service) buildPass(ctx context.Context) error {
	start := svc.cfg.Clock.Now()

	store, err := svc.cfg.Ingestor.Ingest(ctx, svc.cfg.Seed)
	if err != nil {
		svc.cfg.Metrics.BuildPassesTotal.WithLabelValues("failure").Inc()
		return err
	}
	crawlDone := svc.cfg.Clock.Now()

	idx, err := svc.builder.Build(ctx, store)
	if err != nil {
		svc.cfg.Metrics.BuildPassesTotal.WithLabelValues("failure").Inc()
		return err
	}

	graph, droppedEdges := linkgraph.Build(store)

	authority, err := svc.calculator.Calculate(ctx, graph)
	if err != nil {
		svc.cfg.Metrics.BuildPassesTotal.WithLabelValues("failure").Inc()
		return err
	}

	snap := snapshot.New(store, idx, graph, authority, svc.cfg.Tokenizer)
	svc.cfg.Handle.Publish(snap)

	buildDone := svc.cfg.Clock.Now()
	svc.cfg.Metrics.BuildPassesTotal.WithLabelValues("success").Inc()
	svc.cfg.Metrics.BuildDuration.Observe(buildDone.Sub(start).Seconds())
	svc.cfg.Metrics.DocumentsIndexed.Set(float64(store.Count()))

	svc.cfg.Logger.WithFields(logrus.Fields{
		"snapshot_id":         snap.ID,
		"documents":           store.Count(),
		"terms":               idx.NumOfTerms(),
		"edges":               graph.NumOfEdges(),
		"dropped_edges":       droppedEdges,
		"pagerank_iterations": authority.Iterations,
		"pagerank_converged":  authority.Converged,
		"crawl_duration":      crawlDone.Sub(start).String(),
		"total_duration":      buildDone.Sub(start).String(),
	}).Info("published snapshot")

	svc.persistToDisk(snap)

	return nil
}

// restoreFromDisk publishes a previously exported snapshot if one is
// configured and still compatible with the current tokenizer options. Restore
// failures are never fatal; the service falls back to a fresh crawl.
func (svc *Service) restoreFromDisk() bool {
	if svc.cfg.SnapshotPath == "" {
		return false
	}

	data, err := os.ReadFile(svc.cfg.SnapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			svc.cfg.Logger.WithField("err", err).Warn(
				"could not read snapshot dump",
			)
		}

		return false
	}

	snap, err := snapshot.Import(data, svc.cfg.Tokenizer)
	if err != nil {
		svc.cfg.Logger.WithField("err", err).Warn(
			"could not restore snapshot dump; falling back to a fresh crawl",
		)

		return false
	}

	svc.cfg.Handle.Publish(snap)
	svc.cfg.Metrics.DocumentsIndexed.Set(float64(snap.Store.Count()))

	svc.cfg.Logger.WithFields(logrus.Fields{
		"snapshot_id": snap.ID,
		"documents":   snap.Store.Count(),
		"built_at":    snap.BuiltAt,
	}).Info("restored snapshot from disk")

	return true
}

// persistToDisk exports the snapshot next to its final path and renames it
// into place so a crash mid-write never leaves a truncated dump behind.
func (svc *Service) persistToDisk(snap *snapshot.Snapshot) {
	if svc.cfg.SnapshotPath == "" {
		return
	}

	data, err := snapshot.Export(snap)
	if err != nil {
		svc.cfg.Logger.WithField("err", err).Warn("could not export snapshot")
		return
	}

	tmpPath := svc.cfg.SnapshotPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		svc.cfg.Logger.WithField("err", err).Warn("could not write snapshot dump")
		return
	}

	if err := os.Rename(tmpPath, svc.cfg.SnapshotPath); err != nil {
		svc.cfg.Logger.WithField("err", err).Warn("could not write snapshot dump")
	}
}
