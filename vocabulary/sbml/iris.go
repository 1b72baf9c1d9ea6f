package sbml

// Namespace is the biomodels SBML vocabulary namespace.
const Namespace = "http://identifiers.org/biomodels.vocabulary#"

// Prefix is the conventional prefix bound to Namespace.
const Prefix = "SBMLrdf"

// External namespaces used by converted and enriched graphs.
const (
	// BiologyQualifierNamespace holds the biomodels biological qualifiers (bqbiol).
	BiologyQualifierNamespace = "http://biomodels.net/biology-qualifiers#"

	// SIONamespace is the Semanticscience Integrated Ontology.
	SIONamespace = "http://semanticscience.org/resource/"

	// SBONamespace is the Systems Biology Ontology.
	SBONamespace = "http://biomodels.net/SBO/"

	// FBCNamespace is the SBML Level 3 flux balance constraints package, version 2.
	FBCNamespace = "http://www.sbml.org/sbml/level3/version1/fbc/version2#"

	// RDFNamespace is the RDF syntax namespace.
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFSNamespace is the RDF schema namespace.
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

	// OWLNamespace is the OWL namespace.
	OWLNamespace = "http://www.w3.org/2002/07/owl#"

	// XSDNamespace is the XML schema datatypes namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// Class IRIs define the primary node types of a converted model.
const (
	// ClassModel represents the SBML model itself.
	ClassModel = Namespace + "SBMLModel"

	// ClassCompartment represents a bounded container for species.
	ClassCompartment = Namespace + "Compartment"

	// ClassSpecies represents a chemical entity located in one compartment.
	ClassSpecies = Namespace + "Species"

	// ClassReaction represents a transformation of species.
	ClassReaction = Namespace + "Reaction"

	// ClassSpeciesReference represents one participant slot of a reaction.
	ClassSpeciesReference = Namespace + "SpeciesReference"

	// ClassGeneProduct represents an fbc gene product.
	ClassGeneProduct = FBCNamespace + "geneProduct"
)

// Role IRIs are attached as additional types to species references.
const (
	// ClassSideProduct marks a product participant as a side compound (SBO:0000603).
	ClassSideProduct = SBONamespace + "SBO_0000603"

	// ClassSideReactant marks a reactant participant as a side compound (SBO:0000604).
	ClassSideReactant = SBONamespace + "SBO_0000604"
)

// Property IRIs.
const (
	PropType  = RDFNamespace + "type"
	PropLabel = RDFSNamespace + "label"

	PropName           = Namespace + "name"
	PropHasCompartment = Namespace + "compartment"
	PropHasSpecies     = Namespace + "species"
	PropHasReaction    = Namespace + "reaction"
	PropReactant       = Namespace + "reactant"
	PropProduct        = Namespace + "product"
	PropModifier       = Namespace + "modifier"
	PropReversible     = Namespace + "isReversible"
	PropStoichiometry  = Namespace + "stoichiometry"

	PropGeneProductAssociation = FBCNamespace + "geneProductAssociation"

	// PropSameAs is owl:sameAs, used for strict cross-compartment identity.
	PropSameAs = OWLNamespace + "sameAs"

	// PropIsVariantOf is sio:is-variant-of (SIO_000272).
	PropIsVariantOf = SIONamespace + "SIO_000272"

	// PropDerivesInto is sio:derives-into (SIO_000245), a transitive relation.
	PropDerivesInto = SIONamespace + "SIO_000245"

	// PropImmediatelyDerivesInto is sio:immediately-derives-into (SIO_000246).
	PropImmediatelyDerivesInto = SIONamespace + "SIO_000246"
)
