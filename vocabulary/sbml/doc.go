// Package sbml provides vocabulary predicates and class IRIs for SBML-derived graphs.
//
// Biochemical models are described with the biomodels SBML vocabulary
// (http://identifiers.org/biomodels.vocabulary#). Derived edges produced by
// graph enrichment reuse SIO (compound relatedness), SBO (side compound roles)
// and OWL (identity).
//
// # Predicates
//
// Predicates use semstreams three-level dotted notation internally and are
// registered in init() with their standard IRI:
//
//	sbml.entity.name             -> SBMLrdf:name
//	sbml.reaction.reactant       -> SBMLrdf:reactant
//	sbml.link.derives_into       -> sio:SIO_000245
//	sbml.bqbiol.is               -> bqbiol:is
//
// # Table
//
// Converters and enrichment passes do not reach for package constants directly.
// They receive a *Table built once by NewTable (or the shared Default) so the
// terms they emit are fixed for the life of the process:
//
//	tbl := sbml.Default()
//	g.AddEdge(node, tbl.Type, g.CreateNode(tbl.Species))
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/sbml2rdf/vocabulary/sbml"
package sbml
