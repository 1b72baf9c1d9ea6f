// Package fixtures provides in-memory models shared by package tests.
package fixtures

import "github.com/c360studio/sbml2rdf/biomodel"

// BaseURI is the model namespace used with the fixtures.
const BaseURI = "org.mytest"

// Two-compartment model with species A, B, C duplicated in cmp1 and cmp2,
// D in cmp1 and E in cmp2:
//
//	r1    (irreversible) a1 x2    -> b1, c1
//	r1_2  (irreversible) a2 x2    -> b2, c2
//	r2    (reversible)   c1 x4    -> d x4
//	r3    (irreversible) c2 x4    -> e x4
//	rta   (reversible)   a2       -> a1
//	rtc   (reversible)   c1       -> c2
//
// r1 carries the association (g1 and g2) or g3; r2 carries g1 and g2.
func TwoCompartments() *biomodel.Document {
	return &biomodel.Document{
		Model: entity("modelId", "modelName"),
		ListOfCompartments: []biomodel.Compartment{
			{Entity: entity("cmp1", "compartment1")},
			{Entity: entity("cmp2", "compartment2")},
			{Entity: entity("cmp3", "")},
		},
		ListOfSpecies: []biomodel.Species{
			species("a1", "A", "cmp1", biomodel.CVTerm{
				Type:      biomodel.QualifierBiological,
				Qualifier: "is",
				Resources: []string{"https://identifiers.org/SBO_0000299"},
			}),
			species("a2", "A", "cmp2"),
			species("b1", "B", "cmp1"),
			species("b2", "B", "cmp2"),
			species("c1", "C", "cmp1"),
			species("c2", "C", "cmp2"),
			species("d", "D", "cmp1"),
			species("e", "E", "cmp2"),
		},
		ListOfReactions: []biomodel.Reaction{
			{
				Entity:     entity("r1", "name1"),
				Reversible: Bool(false),
				Reactants:  []biomodel.SpeciesReference{ref("a1", 2)},
				Products:   []biomodel.SpeciesReference{ref("b1", 0), ref("c1", 0)},
				GeneProductAssociation: assoc(biomodel.Or(
					biomodel.And(biomodel.Leaf("g1"), biomodel.Leaf("g2")),
					biomodel.Leaf("g3"),
				)),
			},
			{
				Entity:     entity("r1_2", "name1"),
				Reversible: Bool(false),
				Reactants:  []biomodel.SpeciesReference{ref("a2", 2)},
				Products:   []biomodel.SpeciesReference{ref("b2", 1), ref("c2", 0)},
			},
			{
				Entity:                 entity("r2", ""),
				Reversible:             Bool(true),
				Reactants:              []biomodel.SpeciesReference{ref("c1", 4)},
				Products:               []biomodel.SpeciesReference{ref("d", 4)},
				GeneProductAssociation: assoc(biomodel.And(biomodel.Leaf("g1"), biomodel.Leaf("g2"))),
			},
			{
				Entity:     entity("r3", ""),
				Reversible: Bool(false),
				Reactants:  []biomodel.SpeciesReference{ref("c2", 4)},
				Products:   []biomodel.SpeciesReference{ref("e", 4)},
			},
			{
				Entity:     entity("rta", "transport-a"),
				Reversible: Bool(true),
				Reactants:  []biomodel.SpeciesReference{ref("a2", 0)},
				Products:   []biomodel.SpeciesReference{ref("a1", 0)},
			},
			{
				Entity:     entity("rtc", "transport-c"),
				Reversible: Bool(true),
				Reactants:  []biomodel.SpeciesReference{ref("c1", 0)},
				Products:   []biomodel.SpeciesReference{ref("c2", 0)},
			},
		},
		FBC: &biomodel.FBCPackage{
			ListOfGeneProducts: []biomodel.GeneProduct{
				{Entity: entity("g1", ""), Label: "G1"},
				{Entity: entity("g2", ""), Label: "G2"},
				{Entity: entity("g3", ""), Label: "G3"},
			},
		},
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func entity(id, name string, terms ...biomodel.CVTerm) biomodel.Entity {
	return biomodel.Entity{MetaID: id, ID: id, Name: name, Annotation: terms}
}

func species(id, name, compartment string, terms ...biomodel.CVTerm) biomodel.Species {
	return biomodel.Species{Entity: entity(id, name, terms...), Compartment: compartment}
}

// ref builds an anonymous participant; a zero stoichiometry leaves it unset.
func ref(species string, stoichiometry float64) biomodel.SpeciesReference {
	r := biomodel.SpeciesReference{Species: species}
	if stoichiometry != 0 {
		r.Stoichiometry = Float(stoichiometry)
	}
	return r
}

func assoc(a biomodel.Association) *biomodel.Association { return &a }
