package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	check "gopkg.in/check.v1"

	"github.com/webintel/wikisearch/config"
)

var _ = check.Suite(new(ConfigTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type ConfigTestSuite struct{}

func (s *ConfigTestSuite) TestDefaults(c *check.C) {
	cfg, err := config.Load("")
	c.Assert(err, check.IsNil)

	c.Assert(cfg.Crawl.Seed, check.Not(check.Equals), "")
	c.Assert(cfg.Crawl.MaxPages > 0, check.Equals, true)
	c.Assert(cfg.PageRank.DampingFactor, check.Equals, 0.85)
	c.Assert(cfg.Ranking.Weights.Frequency, check.Equals, 1.0)
	c.Assert(cfg.Server.ListenAddr, check.Equals, ":8080")
}

func (s *ConfigTestSuite) TestFileOverridesDefaults(c *check.C) {
	path := filepath.Join(c.MkDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
crawl:
  seed: "Cat"
  maxPages: 10
  rebuildInterval: 1h
ranking:
  weights:
    frequency: 2.0
    authority: 0.1
  proximityWindow: 25
  tokenizer:
    stem: true
server:
  listenAddr: ":9999"
`), 0o600)
	c.Assert(err, check.IsNil)

	cfg, err := config.Load(path)
	c.Assert(err, check.IsNil)

	c.Assert(cfg.Crawl.Seed, check.Equals, "Cat")
	c.Assert(cfg.Crawl.MaxPages, check.Equals, 10)
	c.Assert(cfg.Crawl.RebuildInterval, check.Equals, time.Hour)
	c.Assert(cfg.Ranking.Weights.Frequency, check.Equals, 2.0)
	c.Assert(cfg.Ranking.Weights.Authority, check.Equals, 0.1)
	c.Assert(cfg.Ranking.ProximityWindow, check.Equals, 25)
	c.Assert(cfg.Ranking.Tokenizer.Stem, check.Equals, true)
	c.Assert(cfg.Server.ListenAddr, check.Equals, ":9999")

	// Untouched sections keep their defaults.
	c.Assert(cfg.PageRank.MaxIterations, check.Equals, 50)
}

func (s *ConfigTestSuite) TestMissingFile(c *check.C) {
	_, err := config.Load("/no/such/file.yaml")
	c.Assert(err, check.NotNil)
}

func (s *ConfigTestSuite) TestMalformedFile(c *check.C) {
	path := filepath.Join(c.MkDir(), "config.yaml")
	err := os.WriteFile(path, []byte("{not yaml"), 0o600)
	c.Assert(err, check.IsNil)

	_, err = config.Load(path)
	c.Assert(err, check.NotNil)
}
