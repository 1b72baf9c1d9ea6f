package enrich

import (
	"github.com/c360studio/sbml2rdf/graph"
	"github.com/c360studio/sbml2rdf/vocabulary/sbml"
)

// HarmonizeCompartments links every pair of distinct species that share an
// identical name, in both directions. It returns the number of edges added.
func (e *Engine) HarmonizeCompartments(g *graph.Graph, useSameAs bool) int {
	link := e.table.LinkPredicate(useSameAs)

	var order []string
	byName := make(map[string][]graph.Node)
	for _, s := range g.SubjectsOf(e.table.Type, graph.Resource(graph.Node{ID: e.table.Species})) {
		for _, lit := range g.LiteralsOf(s, e.table.Name) {
			name, ok := lit.(string)
			if !ok {
				continue
			}
			if _, seen := byName[name]; !seen {
				order = append(order, name)
			}
			byName[name] = append(byName[name], s)
		}
	}

	added := 0
	for _, name := range order {
		group := byName[name]
		for _, s1 := range group {
			for _, s2 := range group {
				if s1 == s2 {
					continue
				}
				if g.AddEdge(s1, link, s2) {
					added++
				}
			}
		}
	}

	if added > 0 {
		if useSameAs {
			g.SetPrefix("owl", sbml.OWLNamespace)
		} else {
			g.SetPrefix("sio", sbml.SIONamespace)
		}
	}
	e.logger.Debug("Harmonized compartments", "predicate", link, "added", added)
	return added
}

// AddDerivationLinks links each reactant species of a reaction to each of its
// product species, skipping participants tagged as side compounds. Reversible
// reactions are linked in both directions. It returns the number of edges added.
func (e *Engine) AddDerivationLinks(g *graph.Graph, transitive bool) int {
	link := e.table.DerivationPredicate(transitive)
	sideReactant := graph.Node{ID: e.table.SideReactant}
	sideProduct := graph.Node{ID: e.table.SideProduct}

	added := 0
	for _, r := range e.reactions(g) {
		var inputs, outputs []graph.Node
		for _, rp := range g.NodesOf(r, e.table.Reactant) {
			if g.Contains(rp, e.table.Type, sideReactant) {
				continue
			}
			inputs = append(inputs, g.NodesOf(rp, e.table.HasSpecies)...)
		}
		for _, pp := range g.NodesOf(r, e.table.Product) {
			if g.Contains(pp, e.table.Type, sideProduct) {
				continue
			}
			outputs = append(outputs, g.NodesOf(pp, e.table.HasSpecies)...)
		}

		reversible := g.ContainsLiteral(r, e.table.Reversible, true)
		for _, in := range inputs {
			for _, out := range outputs {
				if g.AddEdge(in, link, out) {
					added++
				}
				if reversible && g.AddEdge(out, link, in) {
					added++
				}
			}
		}
	}

	if added > 0 {
		g.SetPrefix("sio", sbml.SIONamespace)
	}
	e.logger.Debug("Added derivation links", "predicate", link, "added", added)
	return added
}

// TagSideCompounds types every reactant participant whose species label is in
// ids as a side reactant, and every product participant likewise as a side
// product. Tags are per participant node. It returns the number of tags added.
func (e *Engine) TagSideCompounds(g *graph.Graph, ids []string) int {
	if len(ids) == 0 {
		return 0
	}

	side := make(map[string]bool, len(ids))
	for _, id := range ids {
		side[id] = true
	}

	tag := func(participants, class string) int {
		n := 0
		typ := graph.Node{ID: class}
		for _, t := range g.WithPredicate(participants) {
			if t.Object.IsLiteral() {
				continue
			}
			p := t.Object.Node
			if e.refersToSide(g, p, side) && g.AddEdge(p, e.table.Type, typ) {
				n++
			}
		}
		return n
	}

	added := tag(e.table.Reactant, e.table.SideReactant)
	added += tag(e.table.Product, e.table.SideProduct)

	if added > 0 {
		g.SetPrefix("sbo", sbml.SBONamespace)
	}
	e.logger.Debug("Tagged side compounds", "ids", len(ids), "added", added)
	return added
}

func (e *Engine) refersToSide(g *graph.Graph, participant graph.Node, side map[string]bool) bool {
	for _, s := range g.NodesOf(participant, e.table.HasSpecies) {
		for _, lit := range g.LiteralsOf(s, e.table.Label) {
			if label, ok := lit.(string); ok && side[label] {
				return true
			}
		}
	}
	return false
}

// reactions returns every subject with reactant or product edges, in first
// appearance order. Reactions are found through their participants so graphs
// built without type edges still enrich.
func (e *Engine) reactions(g *graph.Graph) []graph.Node {
	seen := make(map[graph.Node]bool)
	var out []graph.Node
	for _, p := range []string{e.table.Reactant, e.table.Product} {
		for _, t := range g.WithPredicate(p) {
			if !seen[t.Subject] {
				seen[t.Subject] = true
				out = append(out, t.Subject)
			}
		}
	}
	return out
}
