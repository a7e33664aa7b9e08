package queryengine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"

	"github.com/webintel/wikisearch/textindexer/tokenizer"
)

const defaultProximityWindow = 50

// Weights blends the four ranking signals into a single score. The intended
// blend is deliberately configuration rather than constants.
type Weights struct {
	// Frequency rewards repeated query-term occurrences.
	Frequency float64 `json:"frequency" yaml:"frequency"`

	// Location rewards an early first mention of any query term.
	Location float64 `json:"location" yaml:"location"`

	// Proximity rewards query terms clustering close together.
	Proximity float64 `json:"proximity" yaml:"proximity"`

	// Authority rewards link-graph importance.
	Authority float64 `json:"authority" yaml:"authority"`
}

// DefaultWeights returns the default signal blend.
func DefaultWeights() Weights {
	return Weights{
		Frequency: 1.0,
		Location:  0.8,
		Proximity: 0.6,
		Authority: 0.5,
	}
}

// Config encapsulates the settings for a query engine.
type Config struct {
	// Tokenizer used to normalize query text. Must match the tokenizer
	// the index was built with.
	Tokenizer *tokenizer.Tokenizer

	// Weights for combining the ranking signals. If all weights are zero,
	// the default blend is used instead.
	Weights Weights

	// ProximityWindow bounds the span (in token positions) within which
	// query terms must co-occur to earn a proximity score. If not
	// specified, a default value of 50 is used.
	ProximityWindow int

	// Clock used for measuring query duration. If not specified, the
	// wall clock is used instead.
	Clock clock.Clock
}

func (cfg *Config) validate() error {
	var err error

	if cfg.Tokenizer == nil {
		err = multierror.Append(err, fmt.Errorf("tokenizer not provided"))
	}

	w := cfg.Weights
	if w.Frequency < 0 || w.Location < 0 || w.Proximity < 0 || w.Authority < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid signal weights, must be >= 0",
		))
	} else if w == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}

	if cfg.ProximityWindow < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for proximity window, must be >= 0",
		))
	} else if cfg.ProximityWindow == 0 {
		cfg.ProximityWindow = defaultProximityWindow
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}

	return err
}
