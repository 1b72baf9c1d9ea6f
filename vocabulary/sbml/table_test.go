package sbml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableSelectors(t *testing.T) {
	tbl := Default()

	assert.Equal(t, SameAs, tbl.LinkPredicate(true))
	assert.Equal(t, IsVariantOf, tbl.LinkPredicate(false))
	assert.Equal(t, DerivesInto, tbl.DerivationPredicate(true))
	assert.Equal(t, ImmediatelyDerivesInto, tbl.DerivationPredicate(false))
}

func TestTableQualifier(t *testing.T) {
	tbl := NewTable()

	assert.Equal(t, "sbml.bqbiol.is", tbl.Qualifier("is"))
	assert.Equal(t, "sbml.bqbiol.has_taxon", tbl.Qualifier("hasTaxon"))
	assert.Equal(t, BiologyQualifierNamespace+"madeUp", tbl.Qualifier("madeUp"))
}

func TestTableIRI(t *testing.T) {
	tbl := NewTable()

	assert.Equal(t, PropDerivesInto, tbl.IRI(DerivesInto))
	assert.Equal(t, "http://example.org/p", tbl.IRI("http://example.org/p"))
	assert.Equal(t, PropType, tbl.IRI(Type))
}

func TestTablePrefixesAreCopies(t *testing.T) {
	tbl := NewTable()

	p := tbl.Prefixes()
	p[Prefix] = "http://elsewhere/"

	assert.Equal(t, Namespace, tbl.Prefixes()[Prefix])
}
