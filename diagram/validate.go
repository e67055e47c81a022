package diagram

import "fmt"

// ValidationError describes one invariant violation found in a forest.
type ValidationError struct {
	NodeID  string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.NodeID, e.Message)
}

// Validate checks the structural invariants that must hold after every
// mutation: unique node ids, no dangling extra-connection references, no
// extra connection duplicating a primary edge, and no cycle through the
// combined graph of primary and extra edges. It returns every violation
// found rather than stopping at the first.
func Validate(forest []*Node) []ValidationError {
	var errs []ValidationError

	seen := map[string]bool{}
	Walk(forest, func(n *Node) {
		if seen[n.ID] {
			errs = append(errs, ValidationError{n.ID, "duplicate node id"})
		}
		seen[n.ID] = true
	})

	Walk(forest, func(n *Node) {
		for _, id := range n.ExtraConnections {
			if !seen[id] {
				errs = append(errs, ValidationError{n.ID,
					fmt.Sprintf("extra connection to missing node %s", id)})
			}
		}
	})

	parents := map[string]string{}
	Walk(forest, func(n *Node) {
		for _, c := range n.Children {
			parents[c.ID] = n.ID
		}
	})
	Walk(forest, func(n *Node) {
		for _, id := range n.ExtraConnections {
			if parents[n.ID] == id && id != "" {
				errs = append(errs, ValidationError{n.ID,
					fmt.Sprintf("extra connection duplicates primary edge from %s", id)})
			}
		}
	})

	errs = append(errs, findCycles(forest)...)
	return errs
}

// findCycles runs a three-color depth-first search over the combined
// directed graph: parent-to-child primary edges plus feed-to-node extra
// edges.
func findCycles(forest []*Node) []ValidationError {
	// Successors by id: children plus nodes listing this id as a feed.
	succ := map[string][]string{}
	Walk(forest, func(n *Node) {
		for _, c := range n.Children {
			succ[n.ID] = append(succ[n.ID], c.ID)
		}
		for _, feed := range n.ExtraConnections {
			succ[feed] = append(succ[feed], n.ID)
		}
	})

	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := map[string]int{}
	var errs []ValidationError

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = grey
		for _, next := range succ[id] {
			switch color[next] {
			case grey:
				errs = append(errs, ValidationError{next, "cycle through combined primary and extra edges"})
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	Walk(forest, func(n *Node) {
		if color[n.ID] == white {
			visit(n.ID)
		}
	})
	return errs
}
