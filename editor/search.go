package editor

import (
	"strings"

	"sld/diagram"
)

// FindMatches collects the id of every node whose name, model, component
// number, meter number or type contains the query as a case-insensitive
// substring. An empty or blank query returns nil — callers distinguish
// "not searching" from "searching with zero matches" through the second
// return of Editor.Matches.
func FindMatches(forest []*diagram.Node, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var ids []string
	diagram.Walk(forest, func(n *diagram.Node) {
		if matchesNode(n, q) {
			ids = append(ids, n.ID)
		}
	})
	return ids
}

func matchesNode(n *diagram.Node, q string) bool {
	for _, field := range []string{
		n.Name,
		n.Model,
		n.ComponentNumber,
		n.MeterNumber,
		string(n.Type),
		n.Type.String(),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
