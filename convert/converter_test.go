package convert

import (
	"testing"

	"github.com/c360studio/sbml2rdf/biomodel"
	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/test/fixtures"
	"github.com/c360studio/sbml2rdf/vocabulary/sbml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ns = fixtures.BaseURI + "#"

func convertFixture(t *testing.T) (*graph.Graph, *sbml.Table) {
	t.Helper()
	table := sbml.Default()
	g, err := New(table, nil).Convert(fixtures.TwoCompartments(), fixtures.BaseURI)
	require.NoError(t, err)
	return g, table
}

func node(g *graph.Graph, local string) graph.Node {
	return g.CreateNode(ns + local)
}

// speciesOf resolves the species behind each participant of reaction r.
func speciesOf(g *graph.Graph, table *sbml.Table, r graph.Node, predicate string) []graph.Node {
	var out []graph.Node
	for _, ref := range g.NodesOf(r, predicate) {
		out = append(out, g.NodesOf(ref, table.HasSpecies)...)
	}
	return out
}

func TestConvertTypesAndNames(t *testing.T) {
	g, table := convertFixture(t)

	assert.False(t, g.HasNode(ns+"foo"))

	classes := map[string][]string{
		table.Compartment: {"cmp1", "cmp2", "cmp3"},
		table.Species:     {"a1", "a2", "b1", "b2", "c1", "c2", "d", "e"},
		table.Reaction:    {"r1", "r1_2", "r2", "r3", "rta", "rtc"},
		table.Model:       {"modelId"},
	}
	for class, ids := range classes {
		for _, id := range ids {
			assert.True(t, g.Contains(node(g, id), table.Type, g.CreateNode(class)), "%s typed %s", id, class)
			assert.True(t, g.ContainsLiteral(node(g, id), table.Label, id), "%s label", id)
		}
	}

	names := map[string]string{"a1": "A", "a2": "A", "b1": "B", "c2": "C", "e": "E", "r1": "name1", "cmp3": ""}
	for id, name := range names {
		assert.True(t, g.ContainsLiteral(node(g, id), table.Name, name), "%s name", id)
	}
}

func TestConvertCompartmentMembership(t *testing.T) {
	g, table := convertFixture(t)

	cmp1, cmp2 := node(g, "cmp1"), node(g, "cmp2")
	for _, id := range []string{"a1", "b1", "c1", "d"} {
		assert.Equal(t, []graph.Node{cmp1}, g.NodesOf(node(g, id), table.HasCompartment), id)
	}
	for _, id := range []string{"a2", "b2", "c2", "e"} {
		assert.Equal(t, []graph.Node{cmp2}, g.NodesOf(node(g, id), table.HasCompartment), id)
	}
}

func TestConvertModelOwnsElements(t *testing.T) {
	g, table := convertFixture(t)

	model := node(g, "modelId")
	assert.Len(t, g.NodesOf(model, table.HasCompartment), 3)
	assert.Len(t, g.NodesOf(model, table.HasSpecies), 8)
	assert.Len(t, g.NodesOf(model, table.HasReaction), 6)
	assert.True(t, g.ContainsLiteral(model, table.Name, "modelName"))
}

func TestConvertReactionParticipants(t *testing.T) {
	g, table := convertFixture(t)
	r1 := node(g, "r1")

	reactants := g.NodesOf(r1, table.Reactant)
	require.Len(t, reactants, 1)
	assert.True(t, reactants[0].Blank)
	assert.Equal(t, []any{2.0}, g.LiteralsOf(reactants[0], table.Stoichiometry))
	assert.True(t, g.Contains(reactants[0], table.Type, g.CreateNode(table.SpeciesReference)))
	assert.Equal(t, []graph.Node{node(g, "a1")}, g.NodesOf(reactants[0], table.HasSpecies))

	products := g.NodesOf(r1, table.Product)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, []any{1.0}, g.LiteralsOf(p, table.Stoichiometry))
	}
	assert.ElementsMatch(t, []graph.Node{node(g, "b1"), node(g, "c1")}, speciesOf(g, table, r1, table.Product))

	assert.Equal(t, []any{false}, g.LiteralsOf(r1, table.Reversible), "reversible recorded once")
	assert.Equal(t, []any{true}, g.LiteralsOf(node(g, "rta"), table.Reversible))
}

func TestConvertAnnotations(t *testing.T) {
	g, table := convertFixture(t)

	a1 := node(g, "a1")
	assert.True(t, g.Contains(a1, table.Qualifier("is"), g.CreateNode("https://identifiers.org/SBO_0000299")))
	assert.Empty(t, g.NodesOf(node(g, "a2"), table.Qualifier("is")))
}

func TestConvertGeneProducts(t *testing.T) {
	g, table := convertFixture(t)

	g1 := node(g, "g1")
	assert.True(t, g.Contains(g1, table.Type, g.CreateNode(table.GeneProduct)))
	assert.True(t, g.ContainsLiteral(g1, table.Name, "G1"))
	assert.True(t, g.ContainsLiteral(g1, table.Label, "g1"))

	assert.ElementsMatch(t,
		[]graph.Node{node(g, "g1"), node(g, "g2"), node(g, "g3")},
		g.NodesOf(node(g, "r1"), table.GeneProductAssociation))
	assert.ElementsMatch(t,
		[]graph.Node{node(g, "g1"), node(g, "g2")},
		g.NodesOf(node(g, "r2"), table.GeneProductAssociation))
	assert.Empty(t, g.NodesOf(node(g, "r3"), table.GeneProductAssociation))
	assert.Equal(t, sbml.FBCNamespace, g.Prefixes()["fbc"])
}

func TestConvertAndOrAssociationsAreEquivalent(t *testing.T) {
	table := sbml.Default()
	build := func(a biomodel.Association) []graph.Node {
		doc := &biomodel.Document{
			Model: biomodel.Entity{ID: "m", MetaID: "m"},
			ListOfReactions: []biomodel.Reaction{
				{Entity: biomodel.Entity{ID: "r", MetaID: "r"}, GeneProductAssociation: &a},
			},
			FBC: &biomodel.FBCPackage{ListOfGeneProducts: []biomodel.GeneProduct{
				{Entity: biomodel.Entity{ID: "x", MetaID: "x"}},
				{Entity: biomodel.Entity{ID: "y", MetaID: "y"}},
			}},
		}
		g, err := New(table, nil).Convert(doc, "urn:m")
		require.NoError(t, err)
		return g.NodesOf(g.CreateNode("urn:m#r"), table.GeneProductAssociation)
	}

	and := build(biomodel.And(biomodel.Leaf("x"), biomodel.Leaf("y")))
	or := build(biomodel.Or(biomodel.Leaf("y"), biomodel.Leaf("x")))
	assert.Len(t, and, 2)
	assert.ElementsMatch(t, and, or)
}

func TestConvertWithoutGeneProductExtension(t *testing.T) {
	doc := fixtures.TwoCompartments()
	doc.FBC = nil

	g, err := New(nil, nil).Convert(doc, fixtures.BaseURI)
	require.NoError(t, err)

	table := sbml.Default()
	assert.False(t, g.HasNode(ns+"g1"))
	assert.Empty(t, g.WithPredicate(table.GeneProductAssociation))
	_, ok := g.Prefixes()["fbc"]
	assert.False(t, ok)
}

func TestConvertSameSpeciesAsReactantAndProduct(t *testing.T) {
	doc := &biomodel.Document{
		Model:              biomodel.Entity{ID: "m", MetaID: "m"},
		ListOfCompartments: []biomodel.Compartment{{Entity: biomodel.Entity{ID: "c", MetaID: "c"}}},
		ListOfSpecies: []biomodel.Species{
			{Entity: biomodel.Entity{ID: "s", MetaID: "s"}, Compartment: "c"},
		},
		ListOfReactions: []biomodel.Reaction{{
			Entity:    biomodel.Entity{ID: "r", MetaID: "r"},
			Reactants: []biomodel.SpeciesReference{{Species: "s", Stoichiometry: fixtures.Float(2)}},
			Products:  []biomodel.SpeciesReference{{Species: "s", Stoichiometry: fixtures.Float(3)}},
		}},
	}

	table := sbml.Default()
	g, err := New(table, nil).Convert(doc, "urn:m")
	require.NoError(t, err)

	r := g.CreateNode("urn:m#r")
	reactants := g.NodesOf(r, table.Reactant)
	products := g.NodesOf(r, table.Product)
	require.Len(t, reactants, 1)
	require.Len(t, products, 1)
	assert.NotEqual(t, reactants[0], products[0])
	assert.Equal(t, []any{2.0}, g.LiteralsOf(reactants[0], table.Stoichiometry))
	assert.Equal(t, []any{3.0}, g.LiteralsOf(products[0], table.Stoichiometry))
	assert.Equal(t, []any{true}, g.LiteralsOf(r, table.Reversible), "unset reversibility defaults to true")
}

func TestConvertNamedParticipantsAndModifiers(t *testing.T) {
	doc := &biomodel.Document{
		Model:              biomodel.Entity{ID: "m", MetaID: "m"},
		ListOfCompartments: []biomodel.Compartment{{Entity: biomodel.Entity{ID: "c", MetaID: "c"}}},
		ListOfSpecies: []biomodel.Species{
			{Entity: biomodel.Entity{ID: "s", MetaID: "s"}, Compartment: "c"},
			{Entity: biomodel.Entity{ID: "enz", MetaID: "enz"}, Compartment: "c"},
		},
		ListOfReactions: []biomodel.Reaction{{
			Entity:    biomodel.Entity{ID: "r", MetaID: "r"},
			Reactants: []biomodel.SpeciesReference{{MetaID: "meta_sr", ID: "sr", Species: "s"}},
			Modifiers: []biomodel.SpeciesReference{{Species: "enz"}},
		}},
	}

	table := sbml.Default()
	g, err := New(table, nil).Convert(doc, "urn:m")
	require.NoError(t, err)

	sr := g.CreateNode("urn:m#meta_sr")
	assert.True(t, g.Contains(g.CreateNode("urn:m#r"), table.Reactant, sr))
	assert.True(t, g.ContainsLiteral(sr, table.Label, "sr"))
	assert.True(t, g.ContainsLiteral(sr, table.Stoichiometry, 1.0))

	mods := g.NodesOf(g.CreateNode("urn:m#r"), table.Modifier)
	require.Len(t, mods, 1)
	assert.Equal(t, []graph.Node{g.CreateNode("urn:m#enz")}, g.NodesOf(mods[0], table.HasSpecies))
	assert.Empty(t, g.LiteralsOf(mods[0], table.Stoichiometry))
}

func TestConvertSharedMetaIDMergesIntoOneNode(t *testing.T) {
	table := sbml.Default()
	build := func(reactions ...biomodel.Reaction) *biomodel.Document {
		return &biomodel.Document{
			Model:              biomodel.Entity{ID: "m", MetaID: "m"},
			ListOfCompartments: []biomodel.Compartment{{Entity: biomodel.Entity{ID: "c", MetaID: "c"}}},
			ListOfSpecies: []biomodel.Species{
				{Entity: biomodel.Entity{ID: "s", MetaID: "meta_s", Name: "S"}, Compartment: "c"},
				{Entity: biomodel.Entity{ID: "s_alias", MetaID: "meta_s", Name: "S"}, Compartment: "c"},
			},
			ListOfReactions: reactions,
		}
	}
	rx := biomodel.Reaction{Entity: biomodel.Entity{ID: "r", MetaID: "meta_r", Name: "R"}, Reversible: fixtures.Bool(false)}

	single, err := New(table, nil).Convert(build(rx), "urn:m")
	require.NoError(t, err)
	twice, err := New(table, nil).Convert(build(rx, rx), "urn:m")
	require.NoError(t, err)

	assert.Equal(t, single.Len(), twice.Len(), "repeated reaction adds no triples")
	model := twice.CreateNode("urn:m#m")
	assert.Equal(t, []graph.Node{twice.CreateNode("urn:m#meta_r")}, twice.NodesOf(model, table.HasReaction))
	assert.Equal(t, []any{false}, twice.LiteralsOf(twice.CreateNode("urn:m#meta_r"), table.Reversible))

	s := twice.CreateNode("urn:m#meta_s")
	assert.Equal(t, []graph.Node{s}, twice.NodesOf(model, table.HasSpecies))
	assert.Len(t, twice.SubjectsOf(table.Type, graph.Resource(twice.CreateNode(table.Species))), 1)
	assert.ElementsMatch(t, []any{"s", "s_alias"}, twice.LiteralsOf(s, table.Label))
	assert.Equal(t, []any{"S"}, twice.LiteralsOf(s, table.Name))
}

func TestConvertMalformedReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*biomodel.Document)
	}{
		{"unknown compartment", func(d *biomodel.Document) {
			d.ListOfSpecies[0].Compartment = "nowhere"
		}},
		{"unknown reactant", func(d *biomodel.Document) {
			d.ListOfReactions[0].Reactants[0].Species = "ghost"
		}},
		{"unknown product", func(d *biomodel.Document) {
			d.ListOfReactions[2].Products[0].Species = "ghost"
		}},
		{"unknown modifier", func(d *biomodel.Document) {
			d.ListOfReactions[3].Modifiers = []biomodel.SpeciesReference{{Species: "ghost"}}
		}},
		{"unknown gene product", func(d *biomodel.Document) {
			leaf := biomodel.Leaf("g9")
			d.ListOfReactions[3].GeneProductAssociation = &leaf
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fixtures.TwoCompartments()
			tt.mutate(doc)

			g, err := New(nil, nil).Convert(doc, fixtures.BaseURI)
			assert.ErrorIs(t, err, ErrMalformedReference)
			assert.Nil(t, g)

			target := graph.New()
			err = New(nil, nil).ConvertInto(target, doc, fixtures.BaseURI)
			assert.ErrorIs(t, err, ErrMalformedReference)
			assert.Equal(t, 0, target.Len(), "no partial graph on failure")
		})
	}
}

func TestConvertEmptyModel(t *testing.T) {
	table := sbml.Default()
	g, err := New(table, nil).Convert(&biomodel.Document{}, "urn:empty")
	require.NoError(t, err)

	model := g.CreateNode("urn:empty#model")
	assert.True(t, g.Contains(model, table.Type, g.CreateNode(table.Model)))
	assert.Equal(t, "urn:empty#", g.Prefixes()["model"])
}

func TestConvertIntoMergesRuns(t *testing.T) {
	g := graph.New()
	conv := New(nil, nil)

	require.NoError(t, conv.ConvertInto(g, fixtures.TwoCompartments(), fixtures.BaseURI))
	first := g.Len()
	require.NoError(t, conv.ConvertInto(g, fixtures.TwoCompartments(), "org.other"))

	assert.Greater(t, g.Len(), first)
	assert.True(t, g.HasNode("org.other#a1"))
	assert.True(t, g.HasNode(ns+"a1"))
}

func TestConvertNilSource(t *testing.T) {
	_, err := New(nil, nil).Convert(nil, "urn:x")
	assert.Error(t, err)
}
