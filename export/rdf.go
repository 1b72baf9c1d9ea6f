// Package export serializes model graphs to RDF text formats.
//
// Dotted predicates are resolved to their standard IRIs through the
// vocabulary table; IRIs are compacted with the graph's prefix table where
// the format allows it.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/vocabulary/sbml"
)

// Exporter serializes graphs using a vocabulary table.
type Exporter struct {
	table *sbml.Table
}

// NewExporter creates an exporter. A nil table selects sbml.Default().
func NewExporter(table *sbml.Table) *Exporter {
	if table == nil {
		table = sbml.Default()
	}
	return &Exporter{table: table}
}

// Serialize renders g in the given format with the default table.
func Serialize(g *graph.Graph, format Format) (string, error) {
	return NewExporter(nil).Serialize(g, format)
}

// Write renders g to w in the given format with the default table.
func Write(w io.Writer, g *graph.Graph, format Format) error {
	return NewExporter(nil).Write(w, g, format)
}

// Serialize renders g in the given format.
func (e *Exporter) Serialize(g *graph.Graph, format Format) (string, error) {
	var sb strings.Builder
	if err := e.Write(&sb, g, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders g to w in the given format.
func (e *Exporter) Write(w io.Writer, g *graph.Graph, format Format) error {
	if g == nil {
		return errors.New("export: nil graph")
	}

	var out string
	switch format {
	case FormatTurtle:
		out = e.toTurtle(g)
	case FormatNTriples:
		out = e.toNTriples(g)
	case FormatJSONLD:
		s, err := e.toJSONLD(g)
		if err != nil {
			return err
		}
		out = s
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

// statement is a triple with its predicate resolved to an IRI.
type statement struct {
	predicate string
	object    graph.Term
}

type subjectBlock struct {
	subject    graph.Node
	types      []graph.Node
	statements []statement
}

// subjects groups triples by subject in first-appearance order and splits
// off type assertions.
func (e *Exporter) subjects(g *graph.Graph) []*subjectBlock {
	index := make(map[graph.Node]*subjectBlock)
	var blocks []*subjectBlock
	for _, t := range g.Triples() {
		b, ok := index[t.Subject]
		if !ok {
			b = &subjectBlock{subject: t.Subject}
			index[t.Subject] = b
			blocks = append(blocks, b)
		}
		if t.Predicate == e.table.Type && !t.Object.IsLiteral() {
			b.types = append(b.types, t.Object.Node)
			continue
		}
		b.statements = append(b.statements, statement{predicate: e.table.IRI(t.Predicate), object: t.Object})
	}
	return blocks
}

// toTurtle serializes to Turtle format.
func (e *Exporter) toTurtle(g *graph.Graph) string {
	var sb strings.Builder
	c := newCompactor(g.Prefixes())

	for _, prefix := range c.sortedPrefixes() {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, c.prefixes[prefix]))
	}
	sb.WriteString("\n")

	for _, b := range e.subjects(g) {
		sb.WriteString(c.node(b.subject))
		sb.WriteString("\n")

		lines := make([]string, 0, len(b.types)+len(b.statements))
		for _, typ := range b.types {
			lines = append(lines, "a "+c.node(typ))
		}
		for _, st := range b.statements {
			lines = append(lines, c.iri(st.predicate)+" "+c.term(st.object))
		}
		for i, line := range lines {
			terminator := " ;"
			if i == len(lines)-1 {
				terminator = " ."
			}
			sb.WriteString("    " + line + terminator + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toNTriples serializes to N-Triples format, one triple per line.
func (e *Exporter) toNTriples(g *graph.Graph) string {
	var sb strings.Builder
	c := newCompactor(nil)
	rdfType := e.table.IRI(e.table.Type)

	for _, t := range g.Triples() {
		predicate := rdfType
		if t.Predicate != e.table.Type {
			predicate = e.table.IRI(t.Predicate)
		}
		sb.WriteString(fmt.Sprintf("%s %s %s .\n", c.node(t.Subject), iriRef(predicate), c.term(t.Object)))
	}

	return sb.String()
}

// toJSONLD serializes to a flattened JSON-LD document.
func (e *Exporter) toJSONLD(g *graph.Graph) (string, error) {
	c := newCompactor(g.Prefixes())
	doc := JSONLDDocument{
		Context: c.prefixes,
		Graph:   make([]JSONLDNode, 0),
	}

	for _, b := range e.subjects(g) {
		node := JSONLDNode{
			ID:         c.jsonID(b.subject),
			Properties: make(map[string]any),
		}
		for _, typ := range b.types {
			node.Type = append(node.Type, c.jsonID(typ))
		}

		values := make(map[string][]any)
		var keys []string
		for _, st := range b.statements {
			key := c.jsonID(graph.Node{ID: st.predicate})
			if _, ok := values[key]; !ok {
				keys = append(keys, key)
			}
			values[key] = append(values[key], c.jsonValue(st.object))
		}
		for _, k := range keys {
			if len(values[k]) == 1 {
				node.Properties[k] = values[k][0]
			} else {
				node.Properties[k] = values[k]
			}
		}
		doc.Graph = append(doc.Graph, node)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json-ld: %w", err)
	}
	return string(data) + "\n", nil
}

// localName matches prefixed-name local parts that need no escaping.
var localName = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_.\-]*[A-Za-z0-9_\-])?$`)

// blankLabel replaces characters not allowed in blank node labels.
var blankLabel = regexp.MustCompile(`[^A-Za-z0-9_\-]`)

// compactor renders nodes and terms, abbreviating IRIs with prefixes.
// A compactor without prefixes writes full IRIs.
type compactor struct {
	prefixes map[string]string
	ordered  []string
}

func newCompactor(prefixes map[string]string) *compactor {
	if prefixes == nil {
		prefixes = map[string]string{}
	}
	c := &compactor{prefixes: prefixes}
	for p := range prefixes {
		c.ordered = append(c.ordered, p)
	}
	// Longest namespace first so nested namespaces win.
	sort.Slice(c.ordered, func(i, j int) bool {
		a, b := prefixes[c.ordered[i]], prefixes[c.ordered[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return c.ordered[i] < c.ordered[j]
	})
	return c
}

func (c *compactor) sortedPrefixes() []string {
	keys := make([]string, 0, len(c.prefixes))
	for k := range c.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// curie returns prefix:local for iri, or false when no prefix applies.
func (c *compactor) curie(iri string) (string, bool) {
	for _, p := range c.ordered {
		ns := c.prefixes[p]
		if ns == "" || !strings.HasPrefix(iri, ns) {
			continue
		}
		local := strings.TrimPrefix(iri, ns)
		if localName.MatchString(local) {
			return p + ":" + local, true
		}
	}
	return "", false
}

func (c *compactor) iri(iri string) string {
	if s, ok := c.curie(iri); ok {
		return s
	}
	return iriRef(iri)
}

func (c *compactor) node(n graph.Node) string {
	if n.Blank {
		return "_:b" + blankLabel.ReplaceAllString(n.ID, "_")
	}
	return c.iri(n.ID)
}

func (c *compactor) term(t graph.Term) string {
	if !t.IsLiteral() {
		return c.node(t.Node)
	}
	switch v := t.Literal.(type) {
	case string:
		return fmt.Sprintf("\"%s\"", escapeString(v))
	case bool:
		return fmt.Sprintf("\"%t\"^^%s", v, c.iri(sbml.XSDNamespace+"boolean"))
	case float64:
		return fmt.Sprintf("\"%s\"^^%s", formatDouble(v), c.iri(sbml.XSDNamespace+"double"))
	case int64:
		return fmt.Sprintf("\"%d\"^^%s", v, c.iri(sbml.XSDNamespace+"integer"))
	default:
		return fmt.Sprintf("\"%s\"", escapeString(fmt.Sprint(v)))
	}
}

func (c *compactor) jsonID(n graph.Node) string {
	if n.Blank {
		return c.node(n)
	}
	if s, ok := c.curie(n.ID); ok {
		return s
	}
	return n.ID
}

func (c *compactor) jsonValue(t graph.Term) any {
	if !t.IsLiteral() {
		return map[string]string{"@id": c.jsonID(t.Node)}
	}
	switch v := t.Literal.(type) {
	case float64:
		return map[string]string{
			"@value": formatDouble(v),
			"@type":  c.jsonID(graph.Node{ID: sbml.XSDNamespace + "double"}),
		}
	default:
		return v
	}
}

func iriRef(iri string) string {
	return "<" + strings.ReplaceAll(iri, ">", "%3E") + ">"
}

// formatDouble renders an xsd:double lexical form.
func formatDouble(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "INF"
	case math.IsInf(v, -1):
		return "-INF"
	case math.IsNaN(v):
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
