package biomodel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AssociationKind tags an Association node.
type AssociationKind string

const (
	AssociationAnd  AssociationKind = "and"
	AssociationOr   AssociationKind = "or"
	AssociationLeaf AssociationKind = "gene"
)

// Association is a boolean gene-product association tree.
type Association struct {
	Kind     AssociationKind
	Children []Association
	// GeneProduct is the short identifier referenced by a leaf.
	GeneProduct string
}

// And builds a conjunction.
func And(children ...Association) Association {
	return Association{Kind: AssociationAnd, Children: children}
}

// Or builds a disjunction.
func Or(children ...Association) Association {
	return Association{Kind: AssociationOr, Children: children}
}

// Leaf builds a reference to a single gene product.
func Leaf(geneProduct string) Association {
	return Association{Kind: AssociationLeaf, GeneProduct: geneProduct}
}

// GeneProducts flattens the tree to the gene products reachable from it,
// in first-seen order without duplicates. And and Or are not distinguished.
func (a Association) GeneProducts() []string {
	seen := make(map[string]bool)
	var out []string
	a.collect(seen, &out)
	return out
}

func (a Association) collect(seen map[string]bool, out *[]string) {
	switch a.Kind {
	case AssociationAnd, AssociationOr:
		for _, c := range a.Children {
			c.collect(seen, out)
		}
	case AssociationLeaf:
		if !seen[a.GeneProduct] {
			seen[a.GeneProduct] = true
			*out = append(*out, a.GeneProduct)
		}
	}
}

// associationDoc is the serialized form: exactly one of and/or/gene.
type associationDoc struct {
	And  []Association `yaml:"and"`
	Or   []Association `yaml:"or"`
	Gene string        `yaml:"gene"`
}

// UnmarshalYAML decodes {and: [...]}, {or: [...]} or {gene: id}.
func (a *Association) UnmarshalYAML(value *yaml.Node) error {
	var doc associationDoc
	if err := value.Decode(&doc); err != nil {
		return err
	}

	set := 0
	if doc.And != nil {
		set++
		*a = And(doc.And...)
	}
	if doc.Or != nil {
		set++
		*a = Or(doc.Or...)
	}
	if doc.Gene != "" {
		set++
		*a = Leaf(doc.Gene)
	}
	if set != 1 {
		return fmt.Errorf("%w: association at line %d must set exactly one of and, or, gene",
			ErrInvalidDocument, value.Line)
	}
	return nil
}

// MarshalYAML encodes the tree in the form accepted by UnmarshalYAML.
func (a Association) MarshalYAML() (any, error) {
	switch a.Kind {
	case AssociationAnd:
		return map[string][]Association{"and": a.Children}, nil
	case AssociationOr:
		return map[string][]Association{"or": a.Children}, nil
	case AssociationLeaf:
		return map[string]string{"gene": a.GeneProduct}, nil
	default:
		return nil, fmt.Errorf("unknown association kind: %q", a.Kind)
	}
}
