package diagram

// CloneSubtree deep-copies a node and every descendant, assigning fresh ids
// at every level and emptying extra connections. A copy must never alias
// the original's ids or silently inherit its secondary links; callers that
// want links on the copy add them explicitly.
func CloneSubtree(n *Node) *Node {
	if n == nil {
		return nil
	}
	clone := n.Clone()
	rekey(clone)
	return clone
}

func rekey(n *Node) {
	n.ID = NewNodeID()
	n.ExtraConnections = nil
	for _, c := range n.Children {
		rekey(c)
	}
}
