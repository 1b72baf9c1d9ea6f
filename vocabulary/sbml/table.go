package sbml

import (
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
)

// Table is the fixed catalogue of node types and edge labels used to build
// and enrich a model graph. A Table is read-only once constructed; share it
// by pointer.
type Table struct {
	// Node classes
	Model            string
	Compartment      string
	Species          string
	Reaction         string
	SpeciesReference string
	GeneProduct      string
	SideReactant     string
	SideProduct      string

	// Node predicates
	Type  string
	Label string
	Name  string

	// Structure predicates
	HasCompartment         string
	HasSpecies             string
	HasReaction            string
	Reactant               string
	Product                string
	Modifier               string
	Reversible             string
	Stoichiometry          string
	GeneProductAssociation string

	// Derived predicates
	SameAs                 string
	IsVariantOf            string
	DerivesInto            string
	ImmediatelyDerivesInto string

	qualifiers map[string]string
	prefixes   map[string]string
}

var defaultTable = NewTable()

// Default returns the process-wide table.
func Default() *Table { return defaultTable }

// NewTable builds a table from the registered vocabulary.
func NewTable() *Table {
	t := &Table{
		Model:            ClassModel,
		Compartment:      ClassCompartment,
		Species:          ClassSpecies,
		Reaction:         ClassReaction,
		SpeciesReference: ClassSpeciesReference,
		GeneProduct:      ClassGeneProduct,
		SideReactant:     ClassSideReactant,
		SideProduct:      ClassSideProduct,

		Type:  Type,
		Label: Label,
		Name:  Name,

		HasCompartment:         HasCompartment,
		HasSpecies:             HasSpecies,
		HasReaction:            HasReaction,
		Reactant:               Reactant,
		Product:                Product,
		Modifier:               Modifier,
		Reversible:             Reversible,
		Stoichiometry:          Stoichiometry,
		GeneProductAssociation: GeneProductAssociation,

		SameAs:                 SameAs,
		IsVariantOf:            IsVariantOf,
		DerivesInto:            DerivesInto,
		ImmediatelyDerivesInto: ImmediatelyDerivesInto,

		qualifiers: make(map[string]string, len(BiologyQualifiers)),
		prefixes: map[string]string{
			Prefix:   Namespace,
			"bqbiol": BiologyQualifierNamespace,
			"sio":    SIONamespace,
			"sbo":    SBONamespace,
			"rdf":    RDFNamespace,
			"rdfs":   RDFSNamespace,
			"owl":    OWLNamespace,
			"xsd":    XSDNamespace,
		},
	}
	for _, q := range BiologyQualifiers {
		t.qualifiers[q.Element] = q.Predicate
	}
	return t
}

// Qualifier returns the predicate for a biological qualifier element name.
// Qualifiers outside the registered set map straight to their bqbiol IRI.
func (t *Table) Qualifier(element string) string {
	if p, ok := t.qualifiers[element]; ok {
		return p
	}
	return BiologyQualifierNamespace + element
}

// LinkPredicate selects the harmonization predicate.
func (t *Table) LinkPredicate(useSameAs bool) string {
	if useSameAs {
		return t.SameAs
	}
	return t.IsVariantOf
}

// DerivationPredicate selects the derivation predicate.
func (t *Table) DerivationPredicate(transitive bool) string {
	if transitive {
		return t.DerivesInto
	}
	return t.ImmediatelyDerivesInto
}

// IRI resolves a predicate to its standard IRI. Predicates that are already
// IRIs are returned unchanged.
func (t *Table) IRI(predicate string) string {
	if strings.Contains(predicate, "://") {
		return predicate
	}
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return Namespace + predicate
}

// Prefixes returns a copy of the standard namespace prefixes.
func (t *Table) Prefixes() map[string]string {
	out := make(map[string]string, len(t.prefixes))
	for k, v := range t.prefixes {
		out[k] = v
	}
	return out
}
