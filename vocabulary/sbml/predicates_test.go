package sbml

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		Type, Label, Name,
		HasCompartment, HasSpecies, HasReaction,
		Reactant, Product, Modifier, Reversible, Stoichiometry,
		GeneProductAssociation,
		SameAs, IsVariantOf, DerivesInto, ImmediatelyDerivesInto,
	}
	for _, q := range BiologyQualifiers {
		predicates = append(predicates, q.Predicate)
	}

	for _, pred := range predicates {
		t.Run(pred, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(pred)
			if meta == nil || meta.Description == "" {
				t.Errorf("predicate %s not registered or missing description", pred)
			}
		})
	}
}

func TestPredicateIRIMappings(t *testing.T) {
	tests := []struct {
		predicate   string
		expectedIRI string
	}{
		{Type, PropType},
		{Label, PropLabel},
		{Name, PropName},
		{HasCompartment, PropHasCompartment},
		{HasSpecies, PropHasSpecies},
		{Reactant, PropReactant},
		{Product, PropProduct},
		{Reversible, PropReversible},
		{Stoichiometry, PropStoichiometry},
		{GeneProductAssociation, PropGeneProductAssociation},
		{SameAs, PropSameAs},
		{IsVariantOf, PropIsVariantOf},
		{DerivesInto, PropDerivesInto},
		{ImmediatelyDerivesInto, PropImmediatelyDerivesInto},
		{"sbml.bqbiol.is", BiologyQualifierNamespace + "is"},
		{"sbml.bqbiol.is_described_by", BiologyQualifierNamespace + "isDescribedBy"},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tt.predicate)
			if meta == nil {
				t.Fatalf("predicate %s not registered", tt.predicate)
			}
			if meta.StandardIRI != tt.expectedIRI {
				t.Errorf("predicate %s: expected IRI %s, got %s", tt.predicate, tt.expectedIRI, meta.StandardIRI)
			}
		})
	}
}

func TestPredicateDataTypes(t *testing.T) {
	tests := []struct {
		predicate    string
		expectedType string
	}{
		{Name, "string"},
		{Label, "string"},
		{Reversible, "bool"},
		{Stoichiometry, "float"},
		{Reactant, "entity_id"},
		{DerivesInto, "entity_id"},
	}

	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(tt.predicate)
			if meta == nil {
				t.Fatalf("predicate %s not registered", tt.predicate)
			}
			if meta.DataType != tt.expectedType {
				t.Errorf("predicate %s: expected type %s, got %s", tt.predicate, tt.expectedType, meta.DataType)
			}
		})
	}
}
