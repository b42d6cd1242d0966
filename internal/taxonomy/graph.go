// Package taxonomy holds the diagnosis hierarchy and its feature links, and
// resolves ancestor chains and expected features for a diagnosis.
package taxonomy

import (
	"slices"
	"sort"
)

// Graph is an immutable diagnosis taxonomy with precomputed indices.
// Build it once with New and share it; all methods are safe for
// concurrent use.
type Graph struct {
	diagnoses []DiagnosisNode
	features  []FeatureNode
	edges     []Edge

	diagByID map[string]int
	featByID map[string]int
	outgoing map[string][]Edge
	incoming map[string][]Edge
	parent   map[string]Edge
	byFeat   map[string][]string
	roots    []string
}

// New validates the nodes and edges and builds a Graph. It fails when the
// parent_of edges do not form a forest or any edge is malformed.
func New(diagnoses []DiagnosisNode, features []FeatureNode, edges []Edge) (*Graph, error) {
	if err := validate(diagnoses, features, edges); err != nil {
		return nil, err
	}

	g := &Graph{
		diagnoses: slices.Clone(diagnoses),
		features:  slices.Clone(features),
		edges:     slices.Clone(edges),
		diagByID:  make(map[string]int, len(diagnoses)),
		featByID:  make(map[string]int, len(features)),
		outgoing:  make(map[string][]Edge),
		incoming:  make(map[string][]Edge),
		parent:    make(map[string]Edge),
		byFeat:    make(map[string][]string),
	}

	for i, d := range g.diagnoses {
		g.diagByID[d.ID] = i
	}
	for i, f := range g.features {
		g.featByID[f.ID] = i
	}
	for _, e := range g.edges {
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
		g.incoming[e.Target] = append(g.incoming[e.Target], e)
		switch e.Relation {
		case RelParentOf:
			g.parent[e.Target] = e
		case RelHasSymptom, RelRiskFactor:
			g.byFeat[e.Target] = appendUnique(g.byFeat[e.Target], e.Source)
		}
	}
	for _, d := range g.diagnoses {
		if _, ok := g.parent[d.ID]; !ok {
			g.roots = append(g.roots, d.ID)
		}
	}

	// Fill in levels from depth where the input left them unset.
	for i := range g.diagnoses {
		if g.diagnoses[i].Level == 0 {
			g.diagnoses[i].Level = len(g.AncestorChain(g.diagnoses[i].ID)) + 1
		}
	}
	return g, nil
}

// Diagnosis returns the diagnosis node with the given id.
func (g *Graph) Diagnosis(id string) (DiagnosisNode, bool) {
	i, ok := g.diagByID[id]
	if !ok {
		return DiagnosisNode{}, false
	}
	return g.diagnoses[i], true
}

// Feature returns the feature node with the given id.
func (g *Graph) Feature(id string) (FeatureNode, bool) {
	i, ok := g.featByID[id]
	if !ok {
		return FeatureNode{}, false
	}
	return g.features[i], true
}

// Diagnoses returns every diagnosis node in declaration order.
func (g *Graph) Diagnoses() []DiagnosisNode {
	return slices.Clone(g.diagnoses)
}

// Features returns every feature node in declaration order.
func (g *Graph) Features() []FeatureNode {
	return slices.Clone(g.features)
}

// Edges returns every edge in declaration order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// DiagnosisIDs returns all diagnosis ids sorted lexicographically.
func (g *Graph) DiagnosisIDs() []string {
	ids := make([]string, len(g.diagnoses))
	for i, d := range g.diagnoses {
		ids[i] = d.ID
	}
	sort.Strings(ids)
	return ids
}

// Incoming returns the edges ending at id, filtered to the given relations
// (all relations when none are given).
func (g *Graph) Incoming(id string, rels ...Relation) []Edge {
	return filterEdges(g.incoming[id], rels)
}

// Outgoing returns the edges starting at id, filtered to the given relations
// (all relations when none are given).
func (g *Graph) Outgoing(id string, rels ...Relation) []Edge {
	return filterEdges(g.outgoing[id], rels)
}

// Parent returns the parent diagnosis of id, if any.
func (g *Graph) Parent(id string) (DiagnosisNode, bool) {
	e, ok := g.parent[id]
	if !ok {
		return DiagnosisNode{}, false
	}
	return g.Diagnosis(e.Source)
}

// Children returns the direct child diagnoses of id in edge order.
func (g *Graph) Children(id string) []DiagnosisNode {
	var out []DiagnosisNode
	for _, e := range g.Outgoing(id, RelParentOf) {
		if d, ok := g.Diagnosis(e.Target); ok {
			out = append(out, d)
		}
	}
	return out
}

// Roots returns the diagnoses without a parent, in declaration order.
func (g *Graph) Roots() []DiagnosisNode {
	out := make([]DiagnosisNode, 0, len(g.roots))
	for _, id := range g.roots {
		d, _ := g.Diagnosis(id)
		out = append(out, d)
	}
	return out
}

// Level returns the depth of id in the hierarchy (1 for roots), or 0 for an
// unknown id.
func (g *Graph) Level(id string) int {
	d, ok := g.Diagnosis(id)
	if !ok {
		return 0
	}
	return d.Level
}

// AncestorChain returns the ancestors of id ordered from its parent up to
// the root. Roots and unknown ids yield an empty chain.
func (g *Graph) AncestorChain(id string) []DiagnosisNode {
	var chain []DiagnosisNode
	for _, e := range g.parentEdges(id) {
		if d, ok := g.Diagnosis(e.Source); ok {
			chain = append(chain, d)
		}
	}
	return chain
}

// Descendants returns every diagnosis below id in breadth-first order.
func (g *Graph) Descendants(id string) []DiagnosisNode {
	var out []DiagnosisNode
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range g.Children(cur) {
			out = append(out, c)
			queue = append(queue, c.ID)
		}
	}
	return out
}

// AssociatedFeatures returns the features directly attached to id through
// has_symptom or risk_factor edges, in edge order without duplicates.
// Features of ancestors are not inherited. Unknown ids yield nothing.
func (g *Graph) AssociatedFeatures(id string) []FeatureNode {
	var out []FeatureNode
	seen := make(map[string]bool)
	for _, e := range g.Outgoing(id, FeatureRelations...) {
		if seen[e.Target] {
			continue
		}
		if f, ok := g.Feature(e.Target); ok {
			seen[e.Target] = true
			out = append(out, f)
		}
	}
	return out
}

// FeatureIDs returns the ids of AssociatedFeatures(id).
func (g *Graph) FeatureIDs(id string) []string {
	feats := g.AssociatedFeatures(id)
	ids := make([]string, len(feats))
	for i, f := range feats {
		ids[i] = f.ID
	}
	return ids
}

// DiagnosesWithFeature returns the ids of diagnoses that list featureID
// directly, in edge order.
func (g *Graph) DiagnosesWithFeature(featureID string) []string {
	return slices.Clone(g.byFeat[featureID])
}

// Highlight collects the elements to emphasise for diagnosis id: the node,
// its ancestor chain with the parent_of edges walked, and its feature edges
// and feature nodes. Unknown ids yield an empty Highlight.
func (g *Graph) Highlight(id string) Highlight {
	d, ok := g.Diagnosis(id)
	if !ok {
		return Highlight{}
	}

	h := Highlight{
		Diagnosis: &d,
		Ancestors: g.AncestorChain(id),
		Features:  g.AssociatedFeatures(id),
		NodeIDs:   []string{d.ID},
	}
	for _, e := range g.parentEdges(id) {
		h.EdgeIDs = append(h.EdgeIDs, e.ID)
		h.NodeIDs = append(h.NodeIDs, e.Source)
	}
	for _, e := range g.Outgoing(id, FeatureRelations...) {
		h.EdgeIDs = append(h.EdgeIDs, e.ID)
	}
	for _, f := range h.Features {
		h.NodeIDs = append(h.NodeIDs, f.ID)
	}
	return h
}

// parentEdges walks parent_of edges upward from id. The forest invariant
// guarantees at most one parent per node, and validation rules out cycles.
func (g *Graph) parentEdges(id string) []Edge {
	var out []Edge
	cur := id
	for {
		e, ok := g.parent[cur]
		if !ok {
			return out
		}
		out = append(out, e)
		cur = e.Source
	}
}

func filterEdges(edges []Edge, rels []Relation) []Edge {
	if len(rels) == 0 {
		return slices.Clone(edges)
	}
	var out []Edge
	for _, e := range edges {
		if slices.Contains(rels, e.Relation) {
			out = append(out, e)
		}
	}
	return out
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
