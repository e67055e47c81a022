package diagram

import "errors"

// Extra connections model many-to-one electrical feeds: a node that is
// powered by more than one upstream source keeps its single owner in the
// tree and records the additional feeds as id references. The combined
// graph of primary edges and extra connections must stay acyclic.

var (
	// ErrWouldCycle is returned when a connect attempt would let a node
	// reach itself through primary and extra edges combined.
	ErrWouldCycle = errors.New("diagram: connection would create a cycle")

	// ErrLinkExists is returned when the requested extra connection is
	// already present.
	ErrLinkExists = errors.New("diagram: connection already exists")
)

// HasLink reports whether the node carries an extra connection to targetID.
func (n *Node) HasLink(targetID string) bool {
	for _, id := range n.ExtraConnections {
		if id == targetID {
			return true
		}
	}
	return false
}

// AddLink appends targetID to the extra connections of the node with
// nodeID. Adding a link that already exists, or naming an unknown node, is
// a no-op.
func AddLink(forest []*Node, nodeID, targetID string) []*Node {
	return mapForest(forest, nodeID, func(n *Node) *Node {
		if n.HasLink(targetID) {
			return n
		}
		clone := n.shallow()
		clone.ExtraConnections = append(append([]string{}, n.ExtraConnections...), targetID)
		return clone
	})
}

// RemoveLink removes a single extra connection from the node with nodeID.
func RemoveLink(forest []*Node, nodeID, targetID string) []*Node {
	return mapForest(forest, nodeID, func(n *Node) *Node {
		if !n.HasLink(targetID) {
			return n
		}
		clone := n.shallow()
		clone.ExtraConnections = make([]string, 0, len(n.ExtraConnections)-1)
		for _, id := range n.ExtraConnections {
			if id != targetID {
				clone.ExtraConnections = append(clone.ExtraConnections, id)
			}
		}
		return clone
	})
}

// StripLinks removes targetID from every node's extra connections
// throughout the forest. Used for explicit disconnects and as the cleanup
// step after a node is deleted.
func StripLinks(forest []*Node, targetID string) []*Node {
	out := make([]*Node, len(forest))
	changed := false
	for i, root := range forest {
		out[i] = stripBelow(root, targetID)
		if out[i] != root {
			changed = true
		}
	}
	if !changed {
		return forest
	}
	return out
}

func stripBelow(n *Node, targetID string) *Node {
	node := n
	if n.HasLink(targetID) {
		clone := n.shallow()
		clone.ExtraConnections = make([]string, 0, len(n.ExtraConnections)-1)
		for _, id := range n.ExtraConnections {
			if id != targetID {
				clone.ExtraConnections = append(clone.ExtraConnections, id)
			}
		}
		node = clone
	}
	copied := false
	for i, c := range n.Children {
		updated := stripBelow(c, targetID)
		if updated == c {
			continue
		}
		if node == n {
			node = n.shallow()
		}
		if !copied {
			node.Children = append([]*Node{}, n.Children...)
			copied = true
		}
		node.Children[i] = updated
	}
	return node
}

// reaches reports whether toID is reachable from fromID following power
// flow: primary parent-to-child edges plus extra connections (a node's
// extra connections name its upstream feeds, so the edge runs feed to
// node).
func reaches(forest []*Node, fromID, toID string) bool {
	if fromID == toID {
		return true
	}
	visited := map[string]bool{}
	queue := []string{fromID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == toID {
			return true
		}
		node := Find(forest, cur)
		if node == nil {
			continue
		}
		for _, c := range node.Children {
			queue = append(queue, c.ID)
		}
		// Nodes fed by cur through an extra connection.
		Walk(forest, func(n *Node) {
			if n.HasLink(cur) {
				queue = append(queue, n.ID)
			}
		})
	}
	return false
}

// Connect joins two nodes. The fed node becomes the child; by default that
// is a. The roles swap only when a is a forest root of source type (grid or
// generator) and b is not source-typed — the symmetric cases deliberately
// do not swap, matching long-standing editor behavior.
//
// A child that is currently a root is reparented: it leaves the root list
// and becomes an owned child of the parent, inheriting its new siblings'
// edge color, or freshColor when it is the first child. A child owned
// elsewhere gains an extra connection to the parent instead, unless the
// link already exists or would close a cycle.
func Connect(forest []*Node, a, b string, freshColor string) ([]*Node, error) {
	childID, parentID := a, b
	na, nb := Find(forest, a), Find(forest, b)
	if na == nil || nb == nil || a == b {
		return forest, nil
	}
	if IsRoot(forest, a) && na.Type.IsSource() && !nb.Type.IsSource() {
		childID, parentID = b, a
	}

	child := Find(forest, childID)
	parent := Find(forest, parentID)

	if IsRoot(forest, childID) {
		// Primary reparent: ownership moves, not just an annotation.
		if reaches(forest, childID, parentID) {
			return forest, ErrWouldCycle
		}
		color := freshColor
		if len(parent.Children) > 0 {
			color = parent.Children[0].EdgeColor
		}
		moved := child.shallow()
		moved.EdgeColor = color
		out := make([]*Node, 0, len(forest)-1)
		for _, root := range forest {
			if root.ID != childID {
				out = append(out, root)
			}
		}
		return InsertChild(out, parentID, moved), nil
	}

	// Secondary link.
	if child.HasLink(parentID) {
		return forest, ErrLinkExists
	}
	for _, c := range parent.Children {
		// An extra connection must not duplicate the primary edge.
		if c.ID == childID {
			return forest, ErrLinkExists
		}
	}
	if IsDescendant(child, parentID) || reaches(forest, childID, parentID) {
		return forest, ErrWouldCycle
	}
	return AddLink(forest, childID, parentID), nil
}

// Disconnect severs the selected edge between child and parent. An extra
// connection is simply removed; a primary edge detaches the child subtree
// and re-inserts it as an independent root. Disconnecting never deletes
// anything.
func Disconnect(forest []*Node, childID, parentID string) []*Node {
	child := Find(forest, childID)
	if child == nil {
		return forest
	}
	if child.HasLink(parentID) {
		return RemoveLink(forest, childID, parentID)
	}
	parent := Find(forest, parentID)
	if parent == nil {
		return forest
	}
	owns := false
	for _, c := range parent.Children {
		if c.ID == childID {
			owns = true
			break
		}
	}
	if !owns {
		return forest
	}
	return Detach(forest, childID)
}
