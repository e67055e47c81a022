package diagram

// Pure structural operations over a forest ([]*Node). None of these mutate
// their input: nodes along a modified path are shallow-copied and untouched
// subtrees are shared with the original, so callers can keep old forests
// around (history does exactly that with full clones).
//
// Operations on an id that does not exist return the forest structurally
// unchanged rather than failing.

// Find returns the first node with the given id, searching depth-first
// across all roots, or nil. Ids are unique within a page so the first match
// is the only match.
func Find(forest []*Node, id string) *Node {
	for _, root := range forest {
		if n := findIn(root, id); n != nil {
			return n
		}
	}
	return nil
}

func findIn(n *Node, id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := findIn(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for every node in the forest, depth-first, parents before
// children.
func Walk(forest []*Node, fn func(n *Node)) {
	for _, root := range forest {
		walkNode(root, fn)
	}
}

func walkNode(n *Node, fn func(n *Node)) {
	fn(n)
	for _, c := range n.Children {
		walkNode(c, fn)
	}
}

// CollectIDs returns the ids of every node in the forest in walk order.
func CollectIDs(forest []*Node) []string {
	var ids []string
	Walk(forest, func(n *Node) {
		ids = append(ids, n.ID)
	})
	return ids
}

// IsRoot reports whether the id names one of the forest's root nodes.
func IsRoot(forest []*Node, id string) bool {
	for _, root := range forest {
		if root.ID == id {
			return true
		}
	}
	return false
}

// IsDescendant reports whether id names a node strictly below n.
func IsDescendant(n *Node, id string) bool {
	for _, c := range n.Children {
		if c.ID == id || IsDescendant(c, id) {
			return true
		}
	}
	return false
}

// shallow returns a copy of the node sharing its slices. Callers replace
// whichever slice they are about to modify.
func (n *Node) shallow() *Node {
	clone := *n
	return &clone
}

// InsertChild appends child to the children of the node with parentID.
// If parentID is not present the forest is returned unchanged.
func InsertChild(forest []*Node, parentID string, child *Node) []*Node {
	out := make([]*Node, len(forest))
	changed := false
	for i, root := range forest {
		out[i] = insertBelow(root, parentID, child)
		if out[i] != root {
			changed = true
		}
	}
	if !changed {
		return forest
	}
	return out
}

func insertBelow(n *Node, parentID string, child *Node) *Node {
	if n.ID == parentID {
		clone := n.shallow()
		clone.Children = append(append([]*Node{}, n.Children...), child)
		return clone
	}
	for i, c := range n.Children {
		if updated := insertBelow(c, parentID, child); updated != c {
			clone := n.shallow()
			clone.Children = append([]*Node{}, n.Children...)
			clone.Children[i] = updated
			return clone
		}
	}
	return n
}

// NodePatch carries the fields an edit may change. Nil fields are left
// untouched on the target node.
type NodePatch struct {
	Name            *string
	Description     *string
	Model           *string
	Amperage        *string
	Voltage         *string
	KVA             *string
	HasMeter        *bool
	MeterNumber     *string
	ComponentNumber *string
	Color           *string
	Shape           *string
	Image           *string
	EdgeColor       *string
	Collapsed       *bool
}

func (p NodePatch) applyTo(n *Node) *Node {
	clone := n.shallow()
	if p.Name != nil {
		clone.Name = *p.Name
	}
	if p.Description != nil {
		clone.Description = *p.Description
	}
	if p.Model != nil {
		clone.Model = *p.Model
	}
	if p.Amperage != nil {
		clone.Amperage = *p.Amperage
	}
	if p.Voltage != nil {
		clone.Voltage = *p.Voltage
	}
	if p.KVA != nil {
		clone.KVA = *p.KVA
	}
	if p.HasMeter != nil {
		clone.HasMeter = *p.HasMeter
	}
	if p.MeterNumber != nil {
		clone.MeterNumber = *p.MeterNumber
	}
	if p.ComponentNumber != nil {
		clone.ComponentNumber = *p.ComponentNumber
	}
	if p.Color != nil {
		clone.Color = *p.Color
	}
	if p.Shape != nil {
		clone.Shape = *p.Shape
	}
	if p.Image != nil {
		clone.Image = *p.Image
	}
	if p.EdgeColor != nil {
		clone.EdgeColor = *p.EdgeColor
	}
	if p.Collapsed != nil {
		clone.Collapsed = *p.Collapsed
	}
	return clone
}

// EditNode merges the patch into the node with the given id. Unknown ids
// leave the forest unchanged.
func EditNode(forest []*Node, id string, patch NodePatch) []*Node {
	return mapForest(forest, id, func(n *Node) *Node {
		return patch.applyTo(n)
	})
}

// SetPosition stores a manual layout position on the node. Unlike other
// edits this is driven by renderer drag gestures and carries no history
// semantics of its own.
func SetPosition(forest []*Node, id string, x, y float64) []*Node {
	return mapForest(forest, id, func(n *Node) *Node {
		clone := n.shallow()
		clone.ManualX = &x
		clone.ManualY = &y
		return clone
	})
}

// mapForest rebuilds the forest with fn applied to the node matching id.
func mapForest(forest []*Node, id string, fn func(*Node) *Node) []*Node {
	out := make([]*Node, len(forest))
	changed := false
	for i, root := range forest {
		out[i] = mapNode(root, id, fn)
		if out[i] != root {
			changed = true
		}
	}
	if !changed {
		return forest
	}
	return out
}

func mapNode(n *Node, id string, fn func(*Node) *Node) *Node {
	if n.ID == id {
		return fn(n)
	}
	for i, c := range n.Children {
		if updated := mapNode(c, id, fn); updated != c {
			clone := n.shallow()
			clone.Children = append([]*Node{}, n.Children...)
			clone.Children[i] = updated
			return clone
		}
	}
	return n
}

// DeleteNode removes the node with the given id from the forest, whether it
// is a root or owned by some ancestor, and then strips every remaining
// extra-connection reference to it.
func DeleteNode(forest []*Node, id string) []*Node {
	out := make([]*Node, 0, len(forest))
	for _, root := range forest {
		if root.ID == id {
			continue
		}
		out = append(out, removeBelow(root, id))
	}
	return StripLinks(out, id)
}

func removeBelow(n *Node, id string) *Node {
	for i, c := range n.Children {
		if c.ID == id {
			clone := n.shallow()
			clone.Children = append([]*Node{}, n.Children[:i]...)
			clone.Children = append(clone.Children, n.Children[i+1:]...)
			return clone
		}
		if updated := removeBelow(c, id); updated != c {
			clone := n.shallow()
			clone.Children = append([]*Node{}, n.Children...)
			clone.Children[i] = updated
			return clone
		}
	}
	return n
}

// RemoveNodes deletes every id in the given order: first the ids that are
// forest roots, then the rest from whichever children lists own them, then
// a single sweep of extra-connection references. Each pass runs over the
// forest produced by the previous one so stale references cannot survive.
// Callers pass an explicitly ordered slice; there is no set semantics here.
func RemoveNodes(forest []*Node, ids []string) []*Node {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}

	out := make([]*Node, 0, len(forest))
	for _, root := range forest {
		if doomed[root.ID] {
			continue
		}
		out = append(out, root)
	}

	for _, id := range ids {
		next := make([]*Node, len(out))
		for i, root := range out {
			next[i] = removeBelow(root, id)
		}
		out = next
	}

	for _, id := range ids {
		out = StripLinks(out, id)
	}
	return out
}

// ParentOf returns the node that owns id, or nil if id is a root or not
// present.
func ParentOf(forest []*Node, id string) *Node {
	var parent *Node
	Walk(forest, func(n *Node) {
		for _, c := range n.Children {
			if c.ID == id {
				parent = n
			}
		}
	})
	return parent
}

// WrapNode replaces the node having id with wrapper, which becomes its sole
// owner. The wrapper takes the wrapped node's former position, whether that
// was a root slot or an index in some parent's children. Unknown ids leave
// the forest unchanged.
func WrapNode(forest []*Node, id string, wrapper *Node) []*Node {
	for i, root := range forest {
		if root.ID == id {
			w := wrapper.shallow()
			w.Children = []*Node{root}
			out := append([]*Node{}, forest...)
			out[i] = w
			return out
		}
	}
	return mapForest(forest, id, func(n *Node) *Node {
		w := wrapper.shallow()
		w.Children = []*Node{n}
		return w
	})
}

// Detach removes the node from its owner and appends it to the root list,
// keeping its children. A root, or an unknown id, leaves the forest
// unchanged. Extra connections pointing at the node keep working since the
// node still exists.
func Detach(forest []*Node, id string) []*Node {
	if IsRoot(forest, id) {
		return forest
	}
	node := Find(forest, id)
	if node == nil {
		return forest
	}
	out := make([]*Node, 0, len(forest)+1)
	for _, root := range forest {
		out = append(out, removeBelow(root, id))
	}
	return append(out, node)
}
