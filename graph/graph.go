// Package graph provides the in-memory labeled multigraph that converted
// models are written into and enrichment passes read from.
//
// Nodes are identified by IRI, or are anonymous (blank) nodes with a generated
// label. Edges are (subject, predicate, object) triples where the object is
// either another node or a scalar literal. The graph is append-only: adding a
// triple that already exists is a no-op, and nothing is ever removed.
//
// A Graph is not safe for concurrent use.
package graph

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/google/uuid"
)

// blankPrefix marks anonymous node identifiers in projected triples.
const blankPrefix = "_:"

// Node is a graph vertex.
type Node struct {
	// ID is the node IRI, or the generated label of an anonymous node.
	ID string
	// Blank is true for anonymous nodes.
	Blank bool
}

// String returns the IRI of a named node or the "_:label" form of a blank node.
func (n Node) String() string {
	if n.Blank {
		return blankPrefix + n.ID
	}
	return n.ID
}

// Term is the object of a triple: a node or a literal.
type Term struct {
	Node    Node
	Literal any
}

// Resource wraps a node as a triple object.
func Resource(n Node) Term { return Term{Node: n} }

// Literal wraps a scalar as a triple object. Values are normalized to
// string, bool, float64 or int64.
func Literal(v any) Term { return Term{Literal: normalize(v)} }

// IsLiteral reports whether the term holds a scalar.
func (t Term) IsLiteral() bool { return t.Literal != nil }

// String renders the term for diagnostics.
func (t Term) String() string {
	if t.IsLiteral() {
		return fmt.Sprintf("%q", fmt.Sprint(t.Literal))
	}
	return t.Node.String()
}

// Triple is a single labeled edge.
type Triple struct {
	Subject   Node
	Predicate string
	Object    Term
}

type spKey struct {
	subject   Node
	predicate string
}

type poKey struct {
	predicate string
	object    Term
}

// Graph is an append-only triple store indexed by (subject, predicate),
// (predicate, object) and predicate.
type Graph struct {
	triples  []Triple
	index    map[Triple]struct{}
	bySP     map[spKey][]Term
	byPO     map[poKey][]Node
	byP      map[string][]int
	nodes    map[string]Node
	prefixes map[string]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[Triple]struct{}),
		bySP:     make(map[spKey][]Term),
		byPO:     make(map[poKey][]Node),
		byP:      make(map[string][]int),
		nodes:    make(map[string]Node),
		prefixes: make(map[string]string),
	}
}

// CreateNode returns the named node for iri, registering it if needed.
func (g *Graph) CreateNode(iri string) Node {
	if n, ok := g.nodes[iri]; ok {
		return n
	}
	n := Node{ID: iri}
	g.nodes[iri] = n
	return n
}

// CreateAnonymousNode returns a fresh node with no stable identity.
func (g *Graph) CreateAnonymousNode() Node {
	return Node{ID: uuid.NewString(), Blank: true}
}

// HasNode reports whether a named node exists for iri.
func (g *Graph) HasNode(iri string) bool {
	_, ok := g.nodes[iri]
	return ok
}

// AddEdge appends a resource edge. It returns false if the triple already existed.
func (g *Graph) AddEdge(subject Node, predicate string, object Node) bool {
	return g.add(Triple{Subject: subject, Predicate: predicate, Object: Resource(object)})
}

// AddLiteral appends a literal edge. It returns false if the triple already existed.
func (g *Graph) AddLiteral(subject Node, predicate string, value any) bool {
	return g.add(Triple{Subject: subject, Predicate: predicate, Object: Literal(value)})
}

func (g *Graph) add(t Triple) bool {
	k := key(t)
	if _, ok := g.index[k]; ok {
		return false
	}
	g.index[k] = struct{}{}
	g.triples = append(g.triples, t)
	g.byP[t.Predicate] = append(g.byP[t.Predicate], len(g.triples)-1)

	sp := spKey{subject: t.Subject, predicate: t.Predicate}
	g.bySP[sp] = append(g.bySP[sp], t.Object)

	po := poKey{predicate: t.Predicate, object: k.Object}
	g.byPO[po] = append(g.byPO[po], t.Subject)

	if !t.Subject.Blank {
		g.nodes[t.Subject.ID] = t.Subject
	}
	if !t.Object.IsLiteral() && !t.Object.Node.Blank {
		g.nodes[t.Object.Node.ID] = t.Object.Node
	}
	return true
}

// Contains reports whether the resource edge exists.
func (g *Graph) Contains(subject Node, predicate string, object Node) bool {
	_, ok := g.index[key(Triple{Subject: subject, Predicate: predicate, Object: Resource(object)})]
	return ok
}

// ContainsLiteral reports whether the literal edge exists.
func (g *Graph) ContainsLiteral(subject Node, predicate string, value any) bool {
	_, ok := g.index[key(Triple{Subject: subject, Predicate: predicate, Object: Literal(value)})]
	return ok
}

// ObjectsOf returns the objects of every edge (subject, predicate, *).
func (g *Graph) ObjectsOf(subject Node, predicate string) []Term {
	objs := g.bySP[spKey{subject: subject, predicate: predicate}]
	out := make([]Term, len(objs))
	copy(out, objs)
	return out
}

// NodesOf returns the resource objects of (subject, predicate, *), skipping literals.
func (g *Graph) NodesOf(subject Node, predicate string) []Node {
	var out []Node
	for _, o := range g.bySP[spKey{subject: subject, predicate: predicate}] {
		if !o.IsLiteral() {
			out = append(out, o.Node)
		}
	}
	return out
}

// LiteralsOf returns the literal objects of (subject, predicate, *).
func (g *Graph) LiteralsOf(subject Node, predicate string) []any {
	var out []any
	for _, o := range g.bySP[spKey{subject: subject, predicate: predicate}] {
		if o.IsLiteral() {
			out = append(out, o.Literal)
		}
	}
	return out
}

// SubjectsOf returns the subjects of every edge (*, predicate, object).
func (g *Graph) SubjectsOf(predicate string, object Term) []Node {
	if object.IsLiteral() {
		object.Literal = normalize(object.Literal)
	}
	subs := g.byPO[poKey{predicate: predicate, object: termKey(object)}]
	out := make([]Node, len(subs))
	copy(out, subs)
	return out
}

// WithPredicate returns every triple labeled predicate, in insertion order.
func (g *Graph) WithPredicate(predicate string) []Triple {
	idx := g.byP[predicate]
	out := make([]Triple, len(idx))
	for i, j := range idx {
		out[i] = g.triples[j]
	}
	return out
}

// Triples returns every triple in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Nodes returns every named node, ordered by IRI.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Merge appends every triple, named node and unset prefix of other into g.
// It returns the number of triples that were new to g.
func (g *Graph) Merge(other *Graph) int {
	if other == nil {
		return 0
	}
	added := 0
	for _, t := range other.triples {
		if g.add(t) {
			added++
		}
	}
	for iri, n := range other.nodes {
		if _, ok := g.nodes[iri]; !ok {
			g.nodes[iri] = n
		}
	}
	for p, ns := range other.prefixes {
		if _, ok := g.prefixes[p]; !ok {
			g.prefixes[p] = ns
		}
	}
	return added
}

// SetPrefix binds a namespace prefix used by serializers.
func (g *Graph) SetPrefix(prefix, namespace string) {
	g.prefixes[prefix] = namespace
}

// Prefixes returns a copy of the namespace prefix table.
func (g *Graph) Prefixes() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for k, v := range g.prefixes {
		out[k] = v
	}
	return out
}

// MessageTriples projects the graph onto semstreams triples. Resource objects
// become their node string form; literals are passed through.
func (g *Graph) MessageTriples(source string, ts time.Time) []message.Triple {
	out := make([]message.Triple, 0, len(g.triples))
	for _, t := range g.triples {
		var obj any
		if t.Object.IsLiteral() {
			obj = t.Object.Literal
		} else {
			obj = t.Object.Node.String()
		}
		out = append(out, message.Triple{
			Subject:    t.Subject.String(),
			Predicate:  t.Predicate,
			Object:     obj,
			Source:     source,
			Timestamp:  ts,
			Confidence: 1.0,
		})
	}
	return out
}

// nanLiteral stands in for NaN in index keys, since NaN never equals itself.
type nanLiteral struct{}

// key returns the index form of t.
func key(t Triple) Triple {
	t.Object = termKey(t.Object)
	return t
}

func termKey(t Term) Term {
	if f, ok := t.Literal.(float64); ok && math.IsNaN(f) {
		t.Literal = nanLiteral{}
	}
	return t
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case string, bool, float64, int64:
		return x
	case float32:
		return float64(x)
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint32:
		return int64(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
