/*
	pagerank package computes the authority score for every document in a
	link graph by running the iterative version of the PageRank algorithm
	until the desired level of convergence is reached. The resulting score
	vector is a stationary distribution: scores are non-negative and sum
	to one, and serve as one additive signal in final ranking rather than
	the sole ranking criterion.
*/

package pagerank

import (
	"context"
	"fmt"
	"math"

	"github.com/webintel/wikisearch/linkgraph"
)

// Authority holds the computed score vector for one corpus snapshot.
type Authority struct {
	// Scores indexed by document ID.
	Scores []float64 `json:"scores"`

	// Iterations actually performed before convergence or cut-off.
	Iterations int `json:"iterations"`

	// Converged reports whether the L1 change fell below the configured
	// tolerance. A non-converged result is not an error; the last vector
	// is an approximation of the stationary distribution.
	Converged bool `json:"converged"`
}

// Score returns the authority score for the specified document ID.
func (a *Authority) Score(docID int) float64 {
	if docID < 0 || docID >= len(a.Scores) {
		return 0
	}

	return a.Scores[docID]
}

// Calculator executes the power method over a link graph using the
// configured damping factor, iteration cap and convergence tolerance.
type Calculator struct {
	cfg Config
}

// NewCalculator returns a new Calculator instance using the provided config
// options.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(
			"PageRank calculator config validation failed: %w", err,
		)
	}

	return &Calculator{cfg: cfg}, nil
}

// Calculate runs the power method on the provided graph and returns the
// authority table. Every document starts at 1/N; each iteration a document's
// new score is (1-d)/N plus d times the score mass flowing in from its
// inbound neighbors. A document with no outbound links is treated as linking
// uniformly to every document so that total mass stays conserved. Iteration
// stops when the L1 change between successive vectors drops below the
// tolerance, when the iteration cap is reached, or when the context gets
// cancelled.
func (c *Calculator) Calculate(
	ctx context.Context, g *linkgraph.Graph,
) (*Authority, error) {

	n := g.NumOfVertices()
	if n == 0 {
		return &Authority{Scores: []float64{}}, nil
	}

	var (
		d         = c.cfg.DampingFactor
		size      = float64(n)
		scores    = make([]float64, n)
		next      = make([]float64, n)
		authority = &Authority{}
	)

	for i := range scores {
		scores[i] = 1.0 / size
	}

	for iter := 0; iter < c.cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Mass held by dangling documents gets redistributed uniformly.
		var danglingMass float64
		for id := 0; id < n; id++ {
			if g.OutDegree(id) == 0 {
				danglingMass += scores[id]
			}
		}

		base := (1.0-d)/size + d*danglingMass/size

		var l1 float64
		for id := 0; id < n; id++ {
			sum := 0.0
			for _, src := range g.In[id] {
				sum += scores[src] / float64(g.OutDegree(src))
			}

			next[id] = base + d*sum
			l1 += math.Abs(next[id] - scores[id])
		}

		scores, next = next, scores
		authority.Iterations = iter + 1

		if l1 < c.cfg.Tolerance {
			authority.Converged = true

			break
		}
	}

	authority.Scores = scores

	return authority, nil
}
