package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/webintel/wikisearch/config"
	"github.com/webintel/wikisearch/crawler"
	"github.com/webintel/wikisearch/metrics"
	"github.com/webintel/wikisearch/pagerank"
	"github.com/webintel/wikisearch/queryengine"
	"github.com/webintel/wikisearch/service"
	"github.com/webintel/wikisearch/service/frontend"
	"github.com/webintel/wikisearch/service/indexbuilder"
	"github.com/webintel/wikisearch/snapshot"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

const appName = "wikisearch"

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all services.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"host": host,
	})

	svcGroup, err := configureServices(rootLogger, logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Launch a separate process to listen and respond to os signals and
	// trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info(
				"shutting down due to os signal",
			)
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	// Shutdown due to context cancellation.
	logger.Info("shutdown complete")
}

func configureServices(
	rootLogger *logrus.Logger, logger *logrus.Entry,
) (service.Group, error) {

	configPath := flag.String(
		"config", "",
		"Path to a YAML configuration file. Defaults apply when omitted",
	)
	listenAddr := flag.String(
		"listen-addr", "",
		"Address to listen on for incoming requests. Overrides the config file",
	)
	seed := flag.String(
		"seed", "",
		"Article title to start the crawl batch from. Overrides the config file",
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}

	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *seed != "" {
		cfg.Crawl.Seed = *seed
	}

	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		rootLogger.SetLevel(level)
	}

	appMetrics := metrics.New()
	handle := new(snapshot.Handle)

	source := crawler.NewWikiSource(crawler.WikiSourceConfig{
		BaseURL:           cfg.Crawl.BaseURL,
		Client:            &http.Client{Timeout: cfg.Crawl.FetchTimeout},
		RequestsPerSecond: cfg.Crawl.RequestsPerSecond,
	})

	ingestor, err := crawler.NewIngestor(crawler.IngestorConfig{
		Source:   source,
		MaxPages: cfg.Crawl.MaxPages,
		Logger:   logger.WithField("service", "crawler"),
	})
	if err != nil {
		return nil, err
	}

	var svcGrp service.Group

	builderSvc, err := indexbuilder.New(indexbuilder.Config{
		Ingestor:     ingestor,
		Seed:         cfg.Crawl.Seed,
		Handle:       handle,
		Tokenizer:    cfg.Ranking.Tokenizer,
		IndexWorkers: cfg.Crawl.Workers,
		PageRank: pagerank.Config{
			DampingFactor: cfg.PageRank.DampingFactor,
			MaxIterations: cfg.PageRank.MaxIterations,
			Tolerance:     cfg.PageRank.Tolerance,
		},
		RebuildInterval: cfg.Crawl.RebuildInterval,
		SnapshotPath:    cfg.Snapshot.Path,
		Metrics:         appMetrics,
		Logger:          logger.WithField("service", "index-builder"),
	})
	if err != nil {
		return nil, err
	}
	svcGrp = append(svcGrp, builderSvc)

	engine, err := queryengine.New(queryengine.Config{
		Tokenizer:       tokenizer.New(cfg.Ranking.Tokenizer),
		Weights:         cfg.Ranking.Weights,
		ProximityWindow: cfg.Ranking.ProximityWindow,
	})
	if err != nil {
		return nil, err
	}

	frontendSvc, err := frontend.New(frontend.Config{
		Handle:     handle,
		Engine:     engine,
		ListenAddr: cfg.Server.ListenAddr,
		Metrics:    appMetrics,
		Logger:     logger.WithField("service", "frontend"),
	})
	if err != nil {
		return nil, err
	}
	svcGrp = append(svcGrp, frontendSvc)

	return svcGrp, nil
}
