package export_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/c360studio/sbml2rdf/convert"
	"github.com/c360studio/sbml2rdf/export"
	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/test/fixtures"
	"github.com/c360studio/sbml2rdf/vocabulary/sbml"
)

func fixtureGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := convert.New(nil, nil).Convert(fixtures.TwoCompartments(), fixtures.BaseURI)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	return g
}

func TestExportTurtle(t *testing.T) {
	output, err := export.Serialize(fixtureGraph(t), export.FormatTurtle)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		"@prefix model: <org.mytest#> .",
		"@prefix bqbiol: <http://biomodels.net/biology-qualifiers#> .",
		"@prefix fbc: <" + sbml.FBCNamespace + "> .",
		"model:a1\n    a SBMLrdf:Species ;",
		`rdfs:label "a1"`,
		`SBMLrdf:name "A"`,
		"SBMLrdf:compartment model:cmp1",
		"bqbiol:is <https://identifiers.org/SBO_0000299>",
		`SBMLrdf:isReversible "false"^^xsd:boolean`,
		`SBMLrdf:stoichiometry "2.0"^^xsd:double`,
		"fbc:geneProductAssociation model:g1",
		"a fbc:geneProduct",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Turtle output should contain %q", want)
		}
	}

	if !strings.Contains(output, "SBMLrdf:reactant _:b") {
		t.Error("Anonymous participants should be written as blank nodes")
	}
}

func TestExportNTriples(t *testing.T) {
	g := fixtureGraph(t)
	output, err := export.Serialize(g, export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != g.Len() {
		t.Errorf("Expected %d lines, got %d", g.Len(), len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, " .") {
			t.Errorf("Line should end with ' .': %s", line)
		}
	}

	want := "<org.mytest#a1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://identifiers.org/biomodels.vocabulary#Species> ."
	if !strings.Contains(output, want) {
		t.Errorf("Output should contain %q", want)
	}
	if !strings.Contains(output, `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`) {
		t.Error("Output should contain full datatype IRIs")
	}
}

func TestExportJSONLD(t *testing.T) {
	output, err := export.Serialize(fixtureGraph(t), export.FormatJSONLD)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		t.Fatalf("Output should be valid JSON: %v", err)
	}

	ctx, ok := doc["@context"].(map[string]any)
	if !ok || ctx["model"] != "org.mytest#" {
		t.Errorf("Context should bind the model prefix, got %v", doc["@context"])
	}

	nodes, ok := doc["@graph"].([]any)
	if !ok || len(nodes) == 0 {
		t.Fatal("Output should contain a non-empty @graph")
	}

	var a1 map[string]any
	for _, n := range nodes {
		m := n.(map[string]any)
		if m["@id"] == "model:a1" {
			a1 = m
		}
	}
	if a1 == nil {
		t.Fatal("Graph should contain model:a1")
	}
	if a1["SBMLrdf:name"] != "A" {
		t.Errorf("Expected name A, got %v", a1["SBMLrdf:name"])
	}
	types, _ := a1["@type"].([]any)
	if len(types) != 1 || types[0] != "SBMLrdf:Species" {
		t.Errorf("Expected type SBMLrdf:Species, got %v", a1["@type"])
	}
}

func TestExportObjectTypes(t *testing.T) {
	g := graph.New()
	s := g.CreateNode("http://example.org/s")
	g.AddLiteral(s, "http://example.org/string", "say \"hi\"\n")
	g.AddLiteral(s, "http://example.org/int", 5)
	g.AddLiteral(s, "http://example.org/float", 0.5)
	g.AddLiteral(s, "http://example.org/bool", true)
	g.AddEdge(s, "http://example.org/ref", g.CreateNode("http://example.org/o"))

	output, err := export.Serialize(g, export.FormatNTriples)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		`"say \"hi\"\n"`,
		`"5"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		`"0.5"^^<http://www.w3.org/2001/XMLSchema#double>`,
		`"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`,
		"<http://example.org/s> <http://example.org/ref> <http://example.org/o> .",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %s", want)
		}
	}
}

func TestExportEmptyGraph(t *testing.T) {
	for _, format := range []export.Format{export.FormatTurtle, export.FormatNTriples, export.FormatJSONLD} {
		t.Run(string(format), func(t *testing.T) {
			if _, err := export.Serialize(graph.New(), format); err != nil {
				t.Errorf("Empty graph should export: %v", err)
			}
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := export.Serialize(graph.New(), "unknown")
	if err == nil {
		t.Error("Expected error for unsupported format")
	}

	if err := export.Write(&bytes.Buffer{}, nil, export.FormatTurtle); err == nil {
		t.Error("Expected error for nil graph")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := export.Write(&buf, fixtureGraph(t), export.FormatTurtle); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "@prefix") {
		t.Error("Turtle should start with prefix declarations")
	}
}
