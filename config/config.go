/*
	config package loads the application configuration from a YAML file
	and fills in defaults for any missing values. Every tunable that
	affects ranking or crawling lives here rather than in code, most
	importantly the blend of the four ranking signals.
*/

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/webintel/wikisearch/queryengine"
	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

// Config is the top-level application configuration.
type Config struct {
	Crawl    CrawlConfig    `yaml:"crawl"`
	Ranking  RankingConfig  `yaml:"ranking"`
	PageRank PageRankConfig `yaml:"pagerank"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CrawlConfig controls the seed article and crawl batch limits.
type CrawlConfig struct {
	// Seed is the article title the crawl batch starts from.
	Seed string `yaml:"seed"`

	// BaseURL of the wiki installation to crawl.
	BaseURL string `yaml:"baseUrl"`

	// MaxPages bounds one crawl batch, seed included.
	MaxPages int `yaml:"maxPages"`

	// RequestsPerSecond throttles page fetches.
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`

	// FetchTimeout bounds a single page fetch.
	FetchTimeout time.Duration `yaml:"fetchTimeout"`

	// RebuildInterval is the time between snapshot rebuild passes. Zero
	// disables rebuilds; the startup snapshot serves indefinitely.
	RebuildInterval time.Duration `yaml:"rebuildInterval"`

	// Workers used for parallel document tokenization during builds.
	Workers int `yaml:"workers"`
}

// RankingConfig controls the query-time ranking blend.
type RankingConfig struct {
	// Weights for the four ranking signals.
	Weights queryengine.Weights `yaml:"weights"`

	// ProximityWindow bounds the token span within which query terms
	// must co-occur to earn a proximity score.
	ProximityWindow int `yaml:"proximityWindow"`

	// Tokenizer options shared by index builds and queries.
	Tokenizer tokenizer.Config `yaml:"tokenizer"`
}

// PageRankConfig controls the authority computation.
type PageRankConfig struct {
	DampingFactor float64 `yaml:"dampingFactor"`
	MaxIterations int     `yaml:"maxIterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// ServerConfig holds the HTTP serving settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// SnapshotConfig controls restart-without-recrawl persistence.
type SnapshotConfig struct {
	// Path of the snapshot dump file. Empty disables persistence.
	Path string `yaml:"path"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Load reads the YAML file at path (if not empty) on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Crawl: CrawlConfig{
			Seed:              "Electric guitar",
			BaseURL:           "https://en.wikipedia.org",
			MaxPages:          250,
			RequestsPerSecond: 2,
			FetchTimeout:      15 * time.Second,
			RebuildInterval:   0,
		},
		Ranking: RankingConfig{
			Weights:         queryengine.DefaultWeights(),
			ProximityWindow: 50,
		},
		PageRank: PageRankConfig{
			DampingFactor: 0.85,
			MaxIterations: 50,
			Tolerance:     1e-6,
		},
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
