// Package biomodel defines the read-only view of a parsed biochemical model
// consumed by the converter, plus a YAML/JSON document format implementing it.
//
// Entities mirror SBML: every element carries an internal unique identifier
// (metaid), a short identifier (id), an optional name and a list of
// controlled-vocabulary annotation terms.
package biomodel

// QualifierType distinguishes biological from model qualifiers.
type QualifierType string

const (
	QualifierBiological QualifierType = "biological"
	QualifierModel      QualifierType = "model"
)

// CVTerm is one controlled-vocabulary annotation: a qualifier and the
// external resources it points at.
type CVTerm struct {
	Type      QualifierType `yaml:"type"`
	Qualifier string        `yaml:"qualifier"`
	Resources []string      `yaml:"resources"`
}

// IsBiological reports whether the term uses a biological qualifier.
// Terms without an explicit type are treated as biological.
func (t CVTerm) IsBiological() bool {
	return t.Type == "" || t.Type == QualifierBiological
}

// Entity holds the attributes shared by every model element.
type Entity struct {
	MetaID     string   `yaml:"metaid"`
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Annotation []CVTerm `yaml:"annotation"`
}

// Key returns the internal unique identifier used for node identity,
// falling back to the short identifier when no metaid is set.
func (e Entity) Key() string {
	if e.MetaID != "" {
		return e.MetaID
	}
	return e.ID
}

// Compartment is a bounded container of species.
type Compartment struct {
	Entity `yaml:",inline"`
}

// Species is a chemical entity located in one compartment.
type Species struct {
	Entity `yaml:",inline"`

	// Compartment is the short identifier of the containing compartment.
	Compartment string `yaml:"compartment"`
}

// SpeciesReference is one participant slot of a reaction.
type SpeciesReference struct {
	MetaID string `yaml:"metaid"`
	ID     string `yaml:"id"`

	// Species is the short identifier of the referenced species.
	Species string `yaml:"species"`

	// Stoichiometry is nil when the source leaves it unset.
	Stoichiometry *float64 `yaml:"stoichiometry"`
}

// Coefficient returns the stoichiometry, defaulting to 1.
func (r SpeciesReference) Coefficient() float64 {
	if r.Stoichiometry == nil {
		return 1.0
	}
	return *r.Stoichiometry
}

// Reaction transforms reactant species into product species.
type Reaction struct {
	Entity `yaml:",inline"`

	// Reversible is nil when unset; unset reactions are reversible.
	Reversible *bool `yaml:"reversible"`

	Reactants []SpeciesReference `yaml:"reactants"`
	Products  []SpeciesReference `yaml:"products"`
	Modifiers []SpeciesReference `yaml:"modifiers"`

	// GeneProductAssociation is the optional fbc association rule.
	GeneProductAssociation *Association `yaml:"gene_product_association"`
}

// IsReversible returns the reversibility flag, defaulting to true.
func (r Reaction) IsReversible() bool {
	if r.Reversible == nil {
		return true
	}
	return *r.Reversible
}

// GeneProduct is an fbc gene product.
type GeneProduct struct {
	Entity `yaml:",inline"`

	// Label is the gene product's display label.
	Label string `yaml:"label"`
}

// Source is the read-only parsed model consumed by the converter.
type Source interface {
	// Info describes the model element itself.
	Info() Entity
	Compartments() []Compartment
	Species() []Species
	Reactions() []Reaction
	// HasGeneProductExtension reports whether the fbc gene product extension is declared.
	HasGeneProductExtension() bool
	GeneProducts() []GeneProduct
}
