// Package convert maps a parsed biochemical model onto a graph.
//
// Every compartment, species, reaction and gene product becomes a named node
// at <uri>#<metaid>. Reaction participants become species reference nodes
// that carry the stoichiometry and point at the species; participants
// without a metaid become anonymous nodes.
package convert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/c360studio/sbml2rdf/biomodel"
	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/vocabulary/sbml"
)

// ErrMalformedReference is returned when an element refers to an entity
// that is absent from the model.
var ErrMalformedReference = errors.New("malformed reference")

// Converter turns biomodel sources into graphs. It holds no per-run state
// and may be reused.
type Converter struct {
	table  *sbml.Table
	logger *slog.Logger
}

// New creates a converter. A nil table selects sbml.Default(), a nil logger
// selects slog.Default().
func New(table *sbml.Table, logger *slog.Logger) *Converter {
	if table == nil {
		table = sbml.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{table: table, logger: logger}
}

// Convert builds a new graph for src under the model namespace uri.
func (c *Converter) Convert(src biomodel.Source, uri string) (*graph.Graph, error) {
	g := graph.New()
	if err := c.ConvertInto(g, src, uri); err != nil {
		return nil, err
	}
	return g, nil
}

// ConvertInto adds the triples for src to g. When conversion fails g is left
// untouched.
func (c *Converter) ConvertInto(g *graph.Graph, src biomodel.Source, uri string) error {
	if src == nil {
		return errors.New("convert: nil model source")
	}

	r := &run{
		table:        c.table,
		g:            graph.New(),
		ns:           uri + "#",
		compartments: make(map[string]graph.Node),
		species:      make(map[string]graph.Node),
		reactions:    make(map[string]graph.Node),
		geneProducts: make(map[string]graph.Node),
	}

	r.g.SetPrefix("model", r.ns)
	for prefix, ns := range c.table.Prefixes() {
		r.g.SetPrefix(prefix, ns)
	}

	r.model = r.modelNode(src.Info())
	r.compartmentNodes(src.Compartments())
	if err := r.speciesNodes(src.Species()); err != nil {
		return err
	}
	if err := r.reactionNodes(src.Reactions()); err != nil {
		return err
	}
	if src.HasGeneProductExtension() {
		r.g.SetPrefix("fbc", sbml.FBCNamespace)
		if err := r.geneProductNodes(src.GeneProducts(), src.Reactions()); err != nil {
			return err
		}
	}

	added := g.Merge(r.g)
	c.logger.Debug("Converted model",
		"model", r.model.ID,
		"compartments", len(r.compartments),
		"species", len(r.species),
		"reactions", len(r.reactions),
		"gene_products", len(r.geneProducts),
		"triples", added)
	return nil
}

// run is the state of one conversion. Lookup maps are keyed by the short
// identifier, which is what cross references use.
type run struct {
	table *sbml.Table
	g     *graph.Graph
	ns    string
	model graph.Node

	compartments map[string]graph.Node
	species      map[string]graph.Node
	reactions    map[string]graph.Node
	geneProducts map[string]graph.Node
}

// entityNode creates the named node for e with its type, label, name and
// biological qualifier annotations.
func (r *run) entityNode(e biomodel.Entity, class, name string) graph.Node {
	key := e.Key()
	n := r.g.CreateNode(r.ns + key)
	r.g.AddEdge(n, r.table.Type, r.g.CreateNode(class))
	r.label(n, e.ID, key)
	r.g.AddLiteral(n, r.table.Name, name)
	r.annotate(n, e.Annotation)
	return n
}

func (r *run) label(n graph.Node, id, key string) {
	if id == "" {
		id = key
	}
	r.g.AddLiteral(n, r.table.Label, id)
}

func (r *run) annotate(n graph.Node, terms []biomodel.CVTerm) {
	for _, term := range terms {
		if !term.IsBiological() {
			continue
		}
		p := r.table.Qualifier(term.Qualifier)
		for _, res := range term.Resources {
			r.g.AddEdge(n, p, r.g.CreateNode(res))
		}
	}
}

func (r *run) modelNode(info biomodel.Entity) graph.Node {
	if info.Key() == "" {
		info.ID = "model"
	}
	return r.entityNode(info, r.table.Model, info.Name)
}

func (r *run) compartmentNodes(compartments []biomodel.Compartment) {
	for _, comp := range compartments {
		n := r.entityNode(comp.Entity, r.table.Compartment, comp.Name)
		r.compartments[comp.ID] = n
		r.g.AddEdge(r.model, r.table.HasCompartment, n)
	}
}

func (r *run) speciesNodes(species []biomodel.Species) error {
	for _, sp := range species {
		comp, ok := r.compartments[sp.Compartment]
		if !ok {
			return fmt.Errorf("species %q: compartment %q: %w", sp.ID, sp.Compartment, ErrMalformedReference)
		}
		n := r.entityNode(sp.Entity, r.table.Species, sp.Name)
		r.g.AddEdge(n, r.table.HasCompartment, comp)
		r.species[sp.ID] = n
		r.g.AddEdge(r.model, r.table.HasSpecies, n)
	}
	return nil
}

func (r *run) reactionNodes(reactions []biomodel.Reaction) error {
	for _, rx := range reactions {
		n := r.entityNode(rx.Entity, r.table.Reaction, rx.Name)
		r.g.AddLiteral(n, r.table.Reversible, rx.IsReversible())

		participants := []struct {
			refs      []biomodel.SpeciesReference
			predicate string
			stoich    bool
		}{
			{rx.Reactants, r.table.Reactant, true},
			{rx.Products, r.table.Product, true},
			{rx.Modifiers, r.table.Modifier, false},
		}
		for _, p := range participants {
			for _, ref := range p.refs {
				refNode, err := r.speciesReference(ref, p.stoich)
				if err != nil {
					return fmt.Errorf("reaction %q: %w", rx.ID, err)
				}
				r.g.AddEdge(n, p.predicate, refNode)
			}
		}

		r.reactions[rx.ID] = n
		r.g.AddEdge(r.model, r.table.HasReaction, n)
	}
	return nil
}

// speciesReference creates the participant node. Each call yields a distinct
// node unless the source reuses a metaid.
func (r *run) speciesReference(ref biomodel.SpeciesReference, withStoichiometry bool) (graph.Node, error) {
	species, ok := r.species[ref.Species]
	if !ok {
		return graph.Node{}, fmt.Errorf("participant species %q: %w", ref.Species, ErrMalformedReference)
	}

	var n graph.Node
	if ref.MetaID == "" {
		n = r.g.CreateAnonymousNode()
	} else {
		n = r.g.CreateNode(r.ns + ref.MetaID)
		r.label(n, ref.ID, ref.MetaID)
	}
	r.g.AddEdge(n, r.table.Type, r.g.CreateNode(r.table.SpeciesReference))
	if withStoichiometry {
		r.g.AddLiteral(n, r.table.Stoichiometry, ref.Coefficient())
	}
	r.g.AddEdge(n, r.table.HasSpecies, species)
	return n, nil
}

func (r *run) geneProductNodes(geneProducts []biomodel.GeneProduct, reactions []biomodel.Reaction) error {
	for _, gp := range geneProducts {
		r.geneProducts[gp.ID] = r.entityNode(gp.Entity, r.table.GeneProduct, gp.Label)
	}

	for _, rx := range reactions {
		if rx.GeneProductAssociation == nil {
			continue
		}
		n := r.reactions[rx.ID]
		for _, id := range rx.GeneProductAssociation.GeneProducts() {
			gene, ok := r.geneProducts[id]
			if !ok {
				return fmt.Errorf("reaction %q: gene product %q: %w", rx.ID, id, ErrMalformedReference)
			}
			r.g.AddEdge(n, r.table.GeneProductAssociation, gene)
		}
	}
	return nil
}
