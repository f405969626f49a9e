// Package artistnet links artists into a directed graph by the wiki
// links on their pages.
package artistnet

import (
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	wikigenre "github.com/dustin/go-wikigenre"
)

// A Network is a directed graph of artists.  An edge a -> b means a's
// page links to b's.
type Network struct {
	g     *simple.DirectedGraph
	ids   map[string]int64
	names map[int64]string
	order []int64
	words map[int64]int
}

// New makes an empty network.
func New() *Network {
	return &Network{
		g:     simple.NewDirectedGraph(),
		ids:   map[string]int64{},
		names: map[int64]string{},
		words: map[int64]int{},
	}
}

// AddArtist adds a node, if it isn't there already.
func (n *Network) AddArtist(name string) int64 {
	if id, ok := n.ids[name]; ok {
		return id
	}
	id := int64(len(n.ids))
	n.g.AddNode(simple.Node(id))
	n.ids[name] = id
	n.names[id] = name
	n.order = append(n.order, id)
	return id
}

// Link adds an edge from one artist to another.  Self links are
// ignored.
func (n *Network) Link(from, to string) {
	if from == to {
		return
	}
	f, t := n.AddArtist(from), n.AddArtist(to)
	n.g.SetEdge(n.g.NewEdge(simple.Node(f), simple.Node(t)))
}

// SetWordCount records the length of an artist's page.
func (n *Network) SetWordCount(name string, words int) {
	n.words[n.AddArtist(name)] = words
}

// WordCount returns the recorded page length, if any.
func (n *Network) WordCount(name string) (int, bool) {
	id, ok := n.ids[name]
	if !ok {
		return 0, false
	}
	w, ok := n.words[id]
	return w, ok
}

// Artists returns the node names in the order they were added.
func (n *Network) Artists() []string {
	rv := make([]string, 0, len(n.order))
	for _, id := range n.order {
		rv = append(rv, n.names[id])
	}
	return rv
}

// Has reports whether name is a node.
func (n *Network) Has(name string) bool {
	_, ok := n.ids[name]
	return ok
}

// HasLink reports whether from links to to.
func (n *Network) HasLink(from, to string) bool {
	f, ok := n.ids[from]
	if !ok {
		return false
	}
	t, ok := n.ids[to]
	return ok && n.g.HasEdgeFromTo(f, t)
}

// Nodes is the number of artists.
func (n *Network) Nodes() int {
	return len(n.order)
}

// Edges is the number of links.
func (n *Network) Edges() int {
	return n.g.Edges().Len()
}

// OutDegree is how many artists name links to.
func (n *Network) OutDegree(name string) int {
	id, ok := n.ids[name]
	if !ok {
		return 0
	}
	return n.g.From(id).Len()
}

// InDegree is how many artists link to name.
func (n *Network) InDegree(name string) int {
	id, ok := n.ids[name]
	if !ok {
		return 0
	}
	return n.g.To(id).Len()
}

// An Edge is a link between two named artists.
type Edge struct {
	From string
	To   string
}

// EdgeList returns the links sorted by the order the artists were
// added.
func (n *Network) EdgeList() []Edge {
	es := graph.EdgesOf(n.g.Edges())
	sort.Slice(es, func(i, j int) bool {
		if es[i].From().ID() != es[j].From().ID() {
			return es[i].From().ID() < es[j].From().ID()
		}
		return es[i].To().ID() < es[j].To().ID()
	})
	rv := make([]Edge, 0, len(es))
	for _, e := range es {
		rv = append(rv, Edge{From: n.names[e.From().ID()], To: n.names[e.To().ID()]})
	}
	return rv
}

// Build makes the network for the given artists from their pages.
// Every artist is a node whether or not it has a page.  The second
// return maps each artist with a page to the artists it links to, in
// page order.
func Build(artists []string, pages []wikigenre.Document, logger *zap.Logger) (*Network, map[string][]string) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := NewMatcher(artists)
	n := New()
	for _, a := range artists {
		n.AddArtist(a)
	}

	found := map[string][]string{}
	for _, p := range pages {
		src, ok := m.Page(p.Name)
		if !ok {
			logger.Warn("could not map page to an artist", zap.String("page", p.Name))
			continue
		}

		var links []string
		for _, target := range wikigenre.FindLinks(p.Text) {
			a, ok := m.Link(target)
			if !ok || a == src {
				continue
			}
			links = append(links, a)
			n.Link(src, a)
		}
		found[src] = links
		n.SetWordCount(src, p.Words())

		logger.Debug("processed page",
			zap.String("artist", src), zap.Int("links", len(links)))
	}
	return n, found
}

// Isolates returns artists with no links in or out.
func (n *Network) Isolates() []string {
	var rv []string
	for _, id := range n.order {
		if n.g.From(id).Len() == 0 && n.g.To(id).Len() == 0 {
			rv = append(rv, n.names[id])
		}
	}
	return rv
}

// Clean drops isolated artists and keeps only the largest weakly
// connected component.  When two components tie, the one holding the
// earliest added artist wins.
func (n *Network) Clean() *Network {
	comps := topo.ConnectedComponents(graph.Undirect{G: n.g})

	var best map[int64]bool
	bestFirst := int64(-1)
	for _, c := range comps {
		if len(c) < 2 {
			continue
		}
		set := make(map[int64]bool, len(c))
		first := int64(-1)
		for _, node := range c {
			id := node.ID()
			set[id] = true
			if first < 0 || id < first {
				first = id
			}
		}
		switch {
		case best == nil, len(set) > len(best),
			len(set) == len(best) && first < bestFirst:
			best, bestFirst = set, first
		}
	}
	return n.subgraph(best)
}

func (n *Network) subgraph(keep map[int64]bool) *Network {
	rv := New()
	for _, id := range n.order {
		if !keep[id] {
			continue
		}
		rv.AddArtist(n.names[id])
		if w, ok := n.words[id]; ok {
			rv.SetWordCount(n.names[id], w)
		}
	}
	for _, e := range n.EdgeList() {
		if rv.Has(e.From) && rv.Has(e.To) {
			rv.Link(e.From, e.To)
		}
	}
	return rv
}
