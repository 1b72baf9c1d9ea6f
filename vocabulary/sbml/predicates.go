package sbml

import "github.com/c360studio/semstreams/vocabulary"

// Node predicates shared by every named node.
const (
	// Type is the primary (and role) type edge of a node.
	Type = "sbml.node.type"

	// Label carries the entity's short SBML identifier.
	Label = "sbml.node.label"

	// Name is the entity's human readable name.
	Name = "sbml.entity.name"
)

// Containment predicates.
const (
	// HasCompartment links the model to its compartments and a species to its location.
	HasCompartment = "sbml.rel.compartment"

	// HasSpecies links the model to its species and a species reference to its species.
	HasSpecies = "sbml.rel.species"

	// HasReaction links the model to its reactions.
	HasReaction = "sbml.rel.reaction"
)

// Reaction predicates.
const (
	// Reactant links a reaction to a consumed species reference.
	Reactant = "sbml.reaction.reactant"

	// Product links a reaction to a produced species reference.
	Product = "sbml.reaction.product"

	// Modifier links a reaction to a modifier species reference.
	Modifier = "sbml.reaction.modifier"

	// Reversible is the reaction reversibility flag.
	Reversible = "sbml.reaction.reversible"

	// Stoichiometry is the participant coefficient of a species reference.
	Stoichiometry = "sbml.participant.stoichiometry"

	// GeneProductAssociation links a reaction to a gene product taking part in it.
	GeneProductAssociation = "sbml.fbc.gene_product_association"
)

// Derived link predicates added by graph enrichment.
const (
	// SameAs states two species denote the same compound.
	SameAs = "sbml.link.same_as"

	// IsVariantOf states two species are located variants of one compound.
	IsVariantOf = "sbml.link.variant_of"

	// DerivesInto states a compound is (transitively) converted into another.
	DerivesInto = "sbml.link.derives_into"

	// ImmediatelyDerivesInto states a single reaction converts a compound into another.
	ImmediatelyDerivesInto = "sbml.link.immediately_derives_into"
)

// Qualifier pairs a biological qualifier element name with its dotted predicate.
type Qualifier struct {
	Element   string
	Predicate string
}

// BiologyQualifiers lists the biomodels biological qualifiers (bqbiol).
var BiologyQualifiers = []Qualifier{
	{"is", "sbml.bqbiol.is"},
	{"hasPart", "sbml.bqbiol.has_part"},
	{"isPartOf", "sbml.bqbiol.is_part_of"},
	{"isVersionOf", "sbml.bqbiol.is_version_of"},
	{"hasVersion", "sbml.bqbiol.has_version"},
	{"isHomologTo", "sbml.bqbiol.is_homolog_to"},
	{"isDescribedBy", "sbml.bqbiol.is_described_by"},
	{"isEncodedBy", "sbml.bqbiol.is_encoded_by"},
	{"encodes", "sbml.bqbiol.encodes"},
	{"occursIn", "sbml.bqbiol.occurs_in"},
	{"hasProperty", "sbml.bqbiol.has_property"},
	{"isPropertyOf", "sbml.bqbiol.is_property_of"},
	{"hasTaxon", "sbml.bqbiol.has_taxon"},
}

func init() {
	vocabulary.Register(Type,
		vocabulary.WithDescription("Primary or role type of a graph node"),
		vocabulary.WithDataType("iri"),
		vocabulary.WithIRI(PropType))

	vocabulary.Register(Label,
		vocabulary.WithDescription("Short SBML identifier of the entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropLabel))

	vocabulary.Register(Name,
		vocabulary.WithDescription("Human readable name of the entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropName))

	vocabulary.Register(HasCompartment,
		vocabulary.WithDescription("Compartment owned by the model or containing the species"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasCompartment))

	vocabulary.Register(HasSpecies,
		vocabulary.WithDescription("Species owned by the model or referenced by a participant"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasSpecies))

	vocabulary.Register(HasReaction,
		vocabulary.WithDescription("Reaction owned by the model"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasReaction))

	vocabulary.Register(Reactant,
		vocabulary.WithDescription("Species reference consumed by the reaction"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropReactant))

	vocabulary.Register(Product,
		vocabulary.WithDescription("Species reference produced by the reaction"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropProduct))

	vocabulary.Register(Modifier,
		vocabulary.WithDescription("Species reference modifying the reaction"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropModifier))

	vocabulary.Register(Reversible,
		vocabulary.WithDescription("Whether the reaction can proceed in both directions"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(PropReversible))

	vocabulary.Register(Stoichiometry,
		vocabulary.WithDescription("Stoichiometric coefficient of the participant"),
		vocabulary.WithDataType("float"),
		vocabulary.WithIRI(PropStoichiometry))

	vocabulary.Register(GeneProductAssociation,
		vocabulary.WithDescription("Gene product participating in the reaction's association rule"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropGeneProductAssociation))

	vocabulary.Register(SameAs,
		vocabulary.WithDescription("Species denoting the same compound in another compartment"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropSameAs))

	vocabulary.Register(IsVariantOf,
		vocabulary.WithDescription("Species sharing a name with this species in another compartment"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropIsVariantOf))

	vocabulary.Register(DerivesInto,
		vocabulary.WithDescription("Compound transitively converted into another compound"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropDerivesInto))

	vocabulary.Register(ImmediatelyDerivesInto,
		vocabulary.WithDescription("Compound converted into another compound by a single reaction"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropImmediatelyDerivesInto))

	for _, q := range BiologyQualifiers {
		vocabulary.Register(q.Predicate,
			vocabulary.WithDescription("Biological qualifier bqbiol:"+q.Element),
			vocabulary.WithDataType("iri"),
			vocabulary.WithIRI(BiologyQualifierNamespace+q.Element))
	}
}
