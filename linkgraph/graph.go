/*
	linkgraph package derives the citation graph for a corpus snapshot from
	the outbound links recorded in the document store. Adjacency is kept in
	dense slices indexed by document ID; every edge endpoint is guaranteed
	to reference a document present in the same snapshot.
*/

package linkgraph

// Graph holds the directed link structure between documents of one snapshot.
type Graph struct {
	// Out[i] lists the document IDs that document i links to.
	Out [][]int `json:"out"`

	// In[i] lists the document IDs that link to document i. Derived by
	// inverting Out.
	In [][]int `json:"in"`
}

// LinkSource is the subset of the document store consumed by Build.
type LinkSource interface {
	// Count returns the number of documents in the snapshot.
	Count() int

	// ResolvedLinks returns the outbound document IDs for the specified
	// document.
	ResolvedLinks(id int) []int
}

// Build assembles the link graph for the provided source. Edges that point
// outside the snapshot's ID range are dropped; the number of dropped edges
// is returned for logging by the caller.
func Build(src LinkSource) (*Graph, int) {
	n := src.Count()

	g := &Graph{
		Out: make([][]int, n),
		In:  make([][]int, n),
	}

	var dropped int
	for id := 0; id < n; id++ {
		for _, dest := range src.ResolvedLinks(id) {
			if dest < 0 || dest >= n || dest == id {
				dropped++

				continue
			}

			g.Out[id] = append(g.Out[id], dest)
			g.In[dest] = append(g.In[dest], id)
		}
	}

	return g, dropped
}

// NumOfVertices returns the number of documents in the graph.
func (g *Graph) NumOfVertices() int {
	return len(g.Out)
}

// OutDegree returns the number of outbound links for the specified document.
func (g *Graph) OutDegree(id int) int {
	return len(g.Out[id])
}

// NumOfEdges returns the total number of edges in the graph.
func (g *Graph) NumOfEdges() int {
	var total int
	for _, out := range g.Out {
		total += len(out)
	}

	return total
}
