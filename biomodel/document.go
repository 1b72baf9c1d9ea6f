package biomodel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a serialized model. JSON documents are accepted as well since
// they are valid YAML.
//
//	model: {metaid: m, id: m, name: Toy model}
//	compartments:
//	  - {metaid: c, id: c, name: cytosol}
//	species:
//	  - {metaid: a, id: a, name: A, compartment: c}
//	reactions:
//	  - id: r1
//	    reversible: false
//	    reactants: [{species: a, stoichiometry: 2}]
//	    products: [{species: b}]
//	    gene_product_association: {or: [{gene: g1}, {gene: g2}]}
//	fbc:
//	  gene_products: [{id: g1, label: G1}]
type Document struct {
	Model              Entity        `yaml:"model"`
	ListOfCompartments []Compartment `yaml:"compartments"`
	ListOfSpecies      []Species     `yaml:"species"`
	ListOfReactions    []Reaction    `yaml:"reactions"`
	FBC                *FBCPackage   `yaml:"fbc"`
}

// FBCPackage holds the flux balance constraints extension content.
type FBCPackage struct {
	ListOfGeneProducts []GeneProduct `yaml:"gene_products"`
}

var _ Source = (*Document)(nil)

func (d *Document) Info() Entity { return d.Model }
func (d *Document) Compartments() []Compartment { return d.ListOfCompartments }
func (d *Document) Species() []Species { return d.ListOfSpecies }
func (d *Document) Reactions() []Reaction { return d.ListOfReactions }
func (d *Document) HasGeneProductExtension() bool { return d.FBC != nil }

func (d *Document) GeneProducts() []GeneProduct {
	if d.FBC == nil {
		return nil
	}
	return d.FBC.ListOfGeneProducts
}

// LoadFile reads and decodes a model document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a model document and checks that every element is identifiable.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes the document as YAML.
func (d *Document) Encode() ([]byte, error) {
	return yaml.Marshal(d)
}

// Validate checks structural requirements. Cross references are resolved
// by the converter, not here.
func (d *Document) Validate() error {
	if d.Model.Key() == "" {
		return fmt.Errorf("%w: model has neither metaid nor id", ErrInvalidDocument)
	}
	for i, c := range d.ListOfCompartments {
		if c.ID == "" {
			return fmt.Errorf("%w: compartment %d has no id", ErrInvalidDocument, i)
		}
	}
	for i, s := range d.ListOfSpecies {
		if s.ID == "" {
			return fmt.Errorf("%w: species %d has no id", ErrInvalidDocument, i)
		}
		if s.Compartment == "" {
			return fmt.Errorf("%w: species %q has no compartment", ErrInvalidDocument, s.ID)
		}
	}
	for i, r := range d.ListOfReactions {
		if r.ID == "" {
			return fmt.Errorf("%w: reaction %d has no id", ErrInvalidDocument, i)
		}
		for _, refs := range [][]SpeciesReference{r.Reactants, r.Products, r.Modifiers} {
			for _, ref := range refs {
				if ref.Species == "" {
					return fmt.Errorf("%w: reaction %q has a participant without species", ErrInvalidDocument, r.ID)
				}
			}
		}
	}
	for i, g := range d.GeneProducts() {
		if g.ID == "" {
			return fmt.Errorf("%w: gene product %d has no id", ErrInvalidDocument, i)
		}
	}
	return nil
}
