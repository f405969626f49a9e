package artistnet

import (
	"sort"
)

// A Degree is one artist's link count in one direction.
type Degree struct {
	Artist string
	Degree int
}

// Stats are the headline numbers for a network.
type Stats struct {
	Nodes         int
	Edges         int
	AverageDegree float64
	TopOut        []Degree
	TopIn         []Degree
}

// ComputeStats summarizes the network, listing the top k artists by
// out- and in-degree.
func (n *Network) ComputeStats(k int) Stats {
	s := Stats{Nodes: n.Nodes(), Edges: n.Edges()}
	if s.Nodes > 0 {
		// Each edge adds one to an out-degree and one to an in-degree.
		s.AverageDegree = float64(2*s.Edges) / float64(s.Nodes)
	}
	s.TopOut = n.top(k, n.OutDegree)
	s.TopIn = n.top(k, n.InDegree)
	return s
}

func (n *Network) top(k int, degree func(string) int) []Degree {
	rv := make([]Degree, 0, n.Nodes())
	for _, a := range n.Artists() {
		rv = append(rv, Degree{Artist: a, Degree: degree(a)})
	}
	sort.SliceStable(rv, func(i, j int) bool { return rv[i].Degree > rv[j].Degree })
	if k < len(rv) {
		rv = rv[:k]
	}
	return rv
}
