package dag

import (
	"fmt"
)

// Fixed category orders so graph construction walks record maps
// deterministically.
var (
	inputCategories  = []Category{CategoryImage, CategoryObject, CategoryImageList, CategoryObjectList, CategoryMeasurement}
	outputCategories = []Category{CategoryImage, CategoryObject, CategoryMeasurement}
)

type buildConfig struct {
	includeDisabled bool
	policy          IncludePolicy
}

// BuildOption configures graph construction.
type BuildOption func(*buildConfig)

// WithDisabled includes disabled modules as nodes instead of skipping
// them. Disabled modules never implicitly rewire their neighbors; they
// only connect through their own declared I/O.
func WithDisabled() BuildOption {
	return func(c *buildConfig) {
		c.includeDisabled = true
	}
}

// WithPolicy sets the category-inclusion policy. The default includes
// every category.
func WithPolicy(policy IncludePolicy) BuildOption {
	return func(c *buildConfig) {
		c.policy = policy
	}
}

// Build accumulates module and data nodes from the extracted records
// into one directed graph.
//
// Per retained module: compute the stable ID, skip entirely when no
// included-category I/O exists, upsert the module node, then for every
// input item wire DataNode→ModuleNode and for every output item wire
// ModuleNode→DataNode. Data nodes are shared: every module that
// mentions (category, name) connects to the same node.
func Build(records []ModuleRecord, opts ...BuildOption) *Graph {
	cfg := buildConfig{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := NewGraph()
	for _, rec := range records {
		if !rec.Enabled && !cfg.includeDisabled {
			continue
		}
		if !rec.HasRelevantIO(cfg.policy) {
			continue
		}
		key := addModuleNode(g, rec, cfg.policy)
		addInputConnections(g, rec, key, cfg.policy)
		addOutputConnections(g, rec, key, cfg.policy)
	}
	return g
}

// addModuleNode upserts the module node under its stable ID. On an ID
// collision (same name, same I/O pattern) the later module's
// attributes win, mirroring the merge-on-collision contract.
func addModuleNode(g *Graph, rec ModuleRecord, policy IncludePolicy) NodeKey {
	stableID := StableID(rec, policy)
	label := fmt.Sprintf("%s #%d", rec.Name, rec.Ordinal)
	if !rec.Enabled {
		label += " (disabled)"
	}

	node := &Node{
		Key:        NodeKey(stableID),
		Kind:       KindModule,
		StableID:   stableID,
		Label:      label,
		ModuleName: rec.Name,
		Ordinal:    rec.Ordinal,
		Enabled:    rec.Enabled,
	}
	if rec.Liveness != nil {
		node.Live = append([]string(nil), rec.Liveness.Live...)
		node.Disposed = append([]string(nil), rec.Liveness.Disposed...)
	}
	g.PutNode(node)
	return node.Key
}

func addInputConnections(g *Graph, rec ModuleRecord, module NodeKey, policy IncludePolicy) {
	for _, category := range inputCategories {
		if !policy.Includes(category) {
			continue
		}
		for _, item := range rec.Inputs[category] {
			dataKey := ensureDataNode(g, category.Normalized(), item)
			// The edge type keeps the original category so list
			// subscriptions stay visible after node normalization.
			_, _ = g.AddEdge(dataKey, module, string(category)+"_input")
		}
	}
}

func addOutputConnections(g *Graph, rec ModuleRecord, module NodeKey, policy IncludePolicy) {
	for _, category := range outputCategories {
		if !policy.Includes(category) {
			continue
		}
		for _, item := range rec.Outputs[category] {
			dataKey := ensureDataNode(g, category, item)
			_, _ = g.AddEdge(module, dataKey, string(category)+"_output")
		}
	}
}

// ensureDataNode gets or creates the shared data node for
// (category, name). The first creator wins; later mentions merge.
func ensureDataNode(g *Graph, category Category, name string) NodeKey {
	key := category.DataKey(name)
	g.AddNode(&Node{
		Key:      key,
		Kind:     KindData,
		Category: category,
		Name:     name,
	})
	return key
}

// AttachImplicitOutputs appends synthetic output edges from the given
// loader module to every data node that currently has zero in-degree,
// modeling a producer that does not enumerate its outputs explicitly.
// It reuses the edge upsert contract and must run strictly after the
// base build. Returns the number of edges added.
func AttachImplicitOutputs(g *Graph, loader NodeKey) (int, error) {
	node, ok := g.Node(loader)
	if !ok {
		return 0, fmt.Errorf("%w: loader %q", ErrNodeNotFound, loader)
	}
	if node.Kind != KindModule {
		return 0, fmt.Errorf("%w: %q", ErrNotModule, loader)
	}

	added := 0
	for _, n := range g.Nodes() {
		if n.Kind != KindData || n.Key == loader {
			continue
		}
		if g.InDegree(n.Key) > 0 {
			continue
		}
		if _, err := g.AddEdge(loader, n.Key, string(n.Category)+"_output"); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
