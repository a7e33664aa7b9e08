package pagerank

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

const (
	defaultDampingFactor = 0.85
	defaultMaxIterations = 50
	defaultTolerance     = 1e-6
)

// Config encapsulates the tunables for the PageRank calculator.
type Config struct {
	// DampingFactor is the probability that a random surfer follows an
	// outbound link rather than teleporting to a random document. Must be
	// in [0, 1]. If not specified, a default value of 0.85 is used.
	DampingFactor float64

	// MaxIterations bounds the number of power-method iterations. If not
	// specified, a default value of 50 is used.
	MaxIterations int

	// Tolerance is the L1 change between successive score vectors below
	// which the computation is considered converged. If not specified, a
	// default value of 1e-6 is used.
	Tolerance float64
}

func (cfg *Config) validate() error {
	var err error

	if cfg.DampingFactor < 0 || cfg.DampingFactor > 1 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for damping factor, must be in [0, 1]",
		))
	} else if cfg.DampingFactor == 0 {
		cfg.DampingFactor = defaultDampingFactor
	}

	if cfg.MaxIterations < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for max iterations, must be >= 0",
		))
	} else if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}

	if cfg.Tolerance < 0 {
		err = multierror.Append(err, fmt.Errorf(
			"invalid value for tolerance, must be >= 0",
		))
	} else if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultTolerance
	}

	return err
}
