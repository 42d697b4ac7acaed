package dag

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	ErrNodeNotFound = errors.New("node not found")
	ErrNotModule    = errors.New("node is not a module node")
	ErrInvalidKey   = errors.New("invalid node key")
)

// NodeKey is a strongly-typed identifier for graph nodes. Module nodes
// use their stable ID; data nodes use "{category}__{name}".
type NodeKey string

// Validate checks if the NodeKey is usable as a graph key.
func (k NodeKey) Validate() error {
	if k == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	if strings.ContainsAny(string(k), "\t\n\r") {
		return fmt.Errorf("%w: key %q cannot contain control characters", ErrInvalidKey, k)
	}
	return nil
}

// NodeKind distinguishes module nodes from data nodes.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindData
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Category classifies data items flowing between modules. The list
// categories only appear on inputs and are normalized away on data
// node keys; measurements only appear in dependency documents.
type Category string

const (
	CategoryImage       Category = "image"
	CategoryObject      Category = "object"
	CategoryImageList   Category = "image_list"
	CategoryObjectList  Category = "object_list"
	CategoryMeasurement Category = "measurement"
)

// Normalized maps list categories onto their element category. Data
// nodes are always keyed by the normalized category so that a list
// input "DNA" and a plain image "DNA" resolve to the same node.
func (c Category) Normalized() Category {
	switch c {
	case CategoryImageList:
		return CategoryImage
	case CategoryObjectList:
		return CategoryObject
	default:
		return c
	}
}

// DataKey builds the node key for a data item of this category.
// The double underscore keeps names with single underscores unambiguous.
func (c Category) DataKey(name string) NodeKey {
	return NodeKey(string(c.Normalized()) + "__" + name)
}

// EdgeStyle carries the optional liveness coloring of an edge.
type EdgeStyle string

const (
	StyleNone     EdgeStyle = ""
	StyleLive     EdgeStyle = "live"
	StyleDisposed EdgeStyle = "disposed"
)

// Node is one vertex of the dependency graph. Module fields are only
// meaningful when Kind is KindModule, data fields when Kind is
// KindData. Nodes are mutated in place by filter passes (Filtered)
// and never recreated.
type Node struct {
	Key  NodeKey
	Kind NodeKind

	// Module fields
	StableID   string
	Label      string
	ModuleName string
	Ordinal    int
	Enabled    bool

	// Liveness annotations (dependency documents only): display names
	// of data items that become live or are disposed at this module.
	Live     []string
	Disposed []string

	// Data fields
	Category Category
	Name     string

	Filtered bool
}

// DisplayName returns the human-facing name: the data item name for
// data nodes, the label for module nodes.
func (n *Node) DisplayName() string {
	if n.Kind == KindData {
		return n.Name
	}
	return n.Label
}

// Edge is one directed connection. Type is "{category}_input" for
// data→module edges (original category, pre-normalization) and
// "{category}_output" for module→data edges.
type Edge struct {
	From NodeKey
	To   NodeKey
	Type string

	Filtered bool
	Style    EdgeStyle
}

// Graph is a mutable directed graph of module and data nodes. All
// accessors that return slices do so in deterministic (sorted) order.
type Graph struct {
	nodes map[NodeKey]*Node
	out   map[NodeKey]map[NodeKey]*Edge
	in    map[NodeKey]map[NodeKey]*Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeKey]*Node),
		out:   make(map[NodeKey]map[NodeKey]*Edge),
		in:    make(map[NodeKey]map[NodeKey]*Edge),
	}
}

// AddNode upserts a node. If the key already exists the existing node
// is returned unchanged; upserts merge, they never error.
func (g *Graph) AddNode(n *Node) *Node {
	if existing, ok := g.nodes[n.Key]; ok {
		return existing
	}
	g.nodes[n.Key] = n
	return n
}

// PutNode upserts a node, replacing the stored attributes when the key
// already exists. Incident edges are kept.
func (g *Graph) PutNode(n *Node) *Node {
	g.nodes[n.Key] = n
	return n
}

// Node returns a node by key if it exists.
func (g *Graph) Node(key NodeKey) (*Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// HasNode reports whether the key is present.
func (g *Graph) HasNode(key NodeKey) bool {
	_, ok := g.nodes[key]
	return ok
}

// AddEdge upserts a directed edge. Both endpoints must exist.
// Re-adding an existing (from, to) pair returns the stored edge.
func (g *Graph) AddEdge(from, to NodeKey, edgeType string) (*Edge, error) {
	if !g.HasNode(from) {
		return nil, fmt.Errorf("%w: edge source %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return nil, fmt.Errorf("%w: edge target %q", ErrNodeNotFound, to)
	}
	if e, ok := g.edge(from, to); ok {
		return e, nil
	}
	e := &Edge{From: from, To: to, Type: edgeType}
	if g.out[from] == nil {
		g.out[from] = make(map[NodeKey]*Edge)
	}
	if g.in[to] == nil {
		g.in[to] = make(map[NodeKey]*Edge)
	}
	g.out[from][to] = e
	g.in[to][from] = e
	return e, nil
}

// Edge returns the edge (from, to) if it exists.
func (g *Graph) Edge(from, to NodeKey) (*Edge, bool) {
	return g.edge(from, to)
}

func (g *Graph) edge(from, to NodeKey) (*Edge, bool) {
	e, ok := g.out[from][to]
	return e, ok
}

// RemoveEdge deletes the edge (from, to) if present.
func (g *Graph) RemoveEdge(from, to NodeKey) {
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// RemoveNode deletes a node and all incident edges. Removing a missing
// key is a no-op.
func (g *Graph) RemoveNode(key NodeKey) {
	if !g.HasNode(key) {
		return
	}
	for to := range g.out[key] {
		delete(g.in[to], key)
	}
	for from := range g.in[key] {
		delete(g.out[from], key)
	}
	delete(g.out, key)
	delete(g.in, key)
	delete(g.nodes, key)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.out {
		count += len(targets)
	}
	return count
}

// Keys returns all node keys in sorted order.
func (g *Graph) Keys() []NodeKey {
	keys := make([]NodeKey, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Nodes returns all nodes sorted by key.
func (g *Graph) Nodes() []*Node {
	keys := g.Keys()
	nodes := make([]*Node, len(keys))
	for i, k := range keys {
		nodes[i] = g.nodes[k]
	}
	return nodes
}

// Edges returns all edges sorted by (from, to).
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, g.EdgeCount())
	for _, targets := range g.out {
		for _, e := range targets {
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b *Edge) int {
		if c := strings.Compare(string(a.From), string(b.From)); c != 0 {
			return c
		}
		return strings.Compare(string(a.To), string(b.To))
	})
	return edges
}

// Successors returns the nodes reachable over one outgoing edge,
// sorted by key.
func (g *Graph) Successors(key NodeKey) []*Node {
	return g.neighbors(g.out[key])
}

// Predecessors returns the nodes with an edge into key, sorted by key.
func (g *Graph) Predecessors(key NodeKey) []*Node {
	return g.neighbors(g.in[key])
}

func (g *Graph) neighbors(adjacent map[NodeKey]*Edge) []*Node {
	keys := make([]NodeKey, 0, len(adjacent))
	for k := range adjacent {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	nodes := make([]*Node, len(keys))
	for i, k := range keys {
		nodes[i] = g.nodes[k]
	}
	return nodes
}

// InDegree returns the number of incoming edges.
func (g *Graph) InDegree(key NodeKey) int {
	return len(g.in[key])
}

// OutDegree returns the number of outgoing edges.
func (g *Graph) OutDegree(key NodeKey) int {
	return len(g.out[key])
}

// OutEdges returns the outgoing edges of key sorted by target.
func (g *Graph) OutEdges(key NodeKey) []*Edge {
	return sortedEdges(g.out[key])
}

// InEdges returns the incoming edges of key sorted by source.
func (g *Graph) InEdges(key NodeKey) []*Edge {
	return sortedEdges(g.in[key])
}

func sortedEdges(adjacent map[NodeKey]*Edge) []*Edge {
	keys := make([]NodeKey, 0, len(adjacent))
	for k := range adjacent {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	edges := make([]*Edge, len(keys))
	for i, k := range keys {
		edges[i] = adjacent[k]
	}
	return edges
}

// Clone returns a deep copy. Filter passes copy before mutating so the
// pre-pass graph stays available for delta reporting.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for key, n := range g.nodes {
		nc := *n
		nc.Live = slices.Clone(n.Live)
		nc.Disposed = slices.Clone(n.Disposed)
		c.nodes[key] = &nc
	}
	for from, targets := range g.out {
		for to, e := range targets {
			ec := *e
			if c.out[from] == nil {
				c.out[from] = make(map[NodeKey]*Edge)
			}
			if c.in[to] == nil {
				c.in[to] = make(map[NodeKey]*Edge)
			}
			c.out[from][to] = &ec
			c.in[to][from] = &ec
		}
	}
	return c
}
