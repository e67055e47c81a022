package editor

// LinkRef identifies a selected edge by the nodes at its ends. It is the
// unit link-mode selection works with, and exists to drive disconnect.
type LinkRef struct {
	Child  string
	Parent string
}

// Selection tracks what the user has selected. The two modes are mutually
// exclusive: either nodes (one, or an ordered multi-select set) or a single
// link. Multi-select keeps insertion order so bulk operations are applied
// deterministically.
type Selection struct {
	node  string
	multi []string
	link  *LinkRef
}

// ClickNode selects a node. With additive set, membership in the
// multi-select set is toggled instead; when the set collapses to exactly
// one member the selection reverts to plain single-node mode.
func (s *Selection) ClickNode(id string, additive bool) {
	s.link = nil
	if !additive {
		s.node = id
		s.multi = nil
		return
	}

	set := s.multi
	if len(set) == 0 && s.node != "" && s.node != id {
		set = []string{s.node}
	}
	found := -1
	for i, m := range set {
		if m == id {
			found = i
		}
	}
	if found >= 0 {
		set = append(set[:found], set[found+1:]...)
	} else {
		set = append(set, id)
	}

	if len(set) == 1 {
		s.node = set[0]
		s.multi = nil
		return
	}
	s.node = ""
	s.multi = set
}

// ClickLink switches to link mode, dropping any node selection.
func (s *Selection) ClickLink(child, parent string) {
	s.node = ""
	s.multi = nil
	s.link = &LinkRef{Child: child, Parent: parent}
}

// Clear drops all selection state.
func (s *Selection) Clear() {
	s.node = ""
	s.multi = nil
	s.link = nil
}

// Node returns the single selected node id. ok is false in link mode, with
// an empty selection, or when the multi-select set holds any size other
// than one.
func (s *Selection) Node() (id string, ok bool) {
	if s.node != "" {
		return s.node, true
	}
	if len(s.multi) == 1 {
		return s.multi[0], true
	}
	return "", false
}

// IDs returns the selected node ids in selection order.
func (s *Selection) IDs() []string {
	if len(s.multi) > 0 {
		out := make([]string, len(s.multi))
		copy(out, s.multi)
		return out
	}
	if s.node != "" {
		return []string{s.node}
	}
	return nil
}

// Link returns the selected edge, or nil when not in link mode.
func (s *Selection) Link() *LinkRef {
	return s.link
}

// Drop removes an id from the selection, keeping the rest intact. Used
// when nodes disappear underneath the selection.
func (s *Selection) Drop(id string) {
	if s.node == id {
		s.node = ""
	}
	for i, m := range s.multi {
		if m == id {
			s.multi = append(s.multi[:i], s.multi[i+1:]...)
			break
		}
	}
	if len(s.multi) == 1 {
		s.node = s.multi[0]
		s.multi = nil
	}
	if s.link != nil && (s.link.Child == id || s.link.Parent == id) {
		s.link = nil
	}
}
