// Package editor owns the live document and every mutation entry point.
// All writes flow through an Editor so undo history, selection and the
// persistence hook observe only complete, committed states; readers get the
// live value and must treat it as immutable.
package editor

import (
	"errors"
	"log/slog"
	"strings"

	"sld/diagram"
)

var (
	// ErrLastPage is returned when deleting a project's only page.
	ErrLastPage = errors.New("editor: cannot remove the last page")

	// ErrLastProject is returned when deleting the document's only project.
	ErrLastProject = errors.New("editor: cannot remove the last project")
)

// NodeMove is one entry of a drag batch: an absolute manual position for a
// node, applied verbatim.
type NodeMove struct {
	ID   string
	X, Y float64
}

// Editor is the single writer for a document. It is not safe for
// concurrent use; mutations are synchronous and run to completion.
type Editor struct {
	doc      *diagram.Document
	history  *History
	sel      Selection
	query    string
	clip     *diagram.Node
	log      *slog.Logger
	onCommit func(*diagram.Document)
}

// New creates an editor around the given document, or a fresh default
// document when doc is nil. Stale active pointers are repaired immediately.
func New(doc *diagram.Document, log *slog.Logger) *Editor {
	if doc == nil {
		doc = diagram.NewDocument()
	}
	if log == nil {
		log = slog.Default()
	}
	doc.RepairActive()
	return &Editor{
		doc:     doc,
		history: NewHistory(),
		log:     log,
	}
}

// OnCommit registers a hook called after every committed state change,
// including drag moves and undo/redo. Persistence hangs off this; the hook
// only ever sees a state produced atomically by one completed mutation.
func (e *Editor) OnCommit(fn func(*diagram.Document)) {
	e.onCommit = fn
}

// Document returns the live document. Read-only by convention.
func (e *Editor) Document() *diagram.Document {
	return e.doc
}

// Page returns the active page. Read-only by convention.
func (e *Editor) Page() *diagram.Page {
	return e.doc.CurrentPage()
}

// CanUndo reports whether an undo point exists.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether a redo point exists.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

func (e *Editor) commit() {
	if e.onCommit != nil {
		e.onCommit(e.doc)
	}
}

// pruneSelection drops every selected id that no longer exists in the
// active forest, including descendants of a deleted subtree and link
// endpoints.
func (e *Editor) pruneSelection() {
	items := e.doc.CurrentPage().Items
	for _, id := range e.sel.IDs() {
		if diagram.Find(items, id) == nil {
			e.sel.Drop(id)
		}
	}
	if link := e.sel.Link(); link != nil {
		if diagram.Find(items, link.Child) == nil || diagram.Find(items, link.Parent) == nil {
			e.sel.Clear()
		}
	}
}

// mutate wraps a structural edit of the active page's forest: snapshot,
// apply, commit.
func (e *Editor) mutate(apply func(items []*diagram.Node) []*diagram.Node) {
	e.history.Save(e.doc)
	page := e.doc.CurrentPage()
	page.Items = apply(page.Items)
	e.commit()
}

// AddRoot adds an independent root node of the given type to the active
// page and returns its id.
func (e *Editor) AddRoot(t diagram.NodeType) string {
	node := diagram.NewNode(t)
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return append(append([]*diagram.Node{}, items...), node)
	})
	e.log.Debug("node added", "id", node.ID, "type", t)
	return node.ID
}

// AddChild adds a new node of the given type under parentID and returns its
// id, or "" if the parent does not exist.
func (e *Editor) AddChild(parentID string, t diagram.NodeType) string {
	page := e.doc.CurrentPage()
	parent := diagram.Find(page.Items, parentID)
	if parent == nil {
		return ""
	}
	node := diagram.NewNode(t)
	if len(parent.Children) > 0 {
		node.EdgeColor = parent.Children[0].EdgeColor
	} else {
		node.EdgeColor = RandomEdgeColor()
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.InsertChild(items, parentID, node)
	})
	e.log.Debug("child added", "id", node.ID, "parent", parentID, "type", t)
	return node.ID
}

// Edit merges the patch into the node with the given id.
func (e *Editor) Edit(id string, patch diagram.NodePatch) {
	if diagram.Find(e.doc.CurrentPage().Items, id) == nil {
		return
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.EditNode(items, id, patch)
	})
}

// Delete removes the node and its subtree, then sweeps dangling extra
// connections. The boundary is responsible for confirming destructive
// actions first.
func (e *Editor) Delete(id string) {
	if diagram.Find(e.doc.CurrentPage().Items, id) == nil {
		return
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.DeleteNode(items, id)
	})
	e.pruneSelection()
	e.log.Debug("node deleted", "id", id)
}

// DeleteMany removes the given nodes in order as one undoable operation.
func (e *Editor) DeleteMany(ids []string) {
	if len(ids) == 0 {
		return
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.RemoveNodes(items, ids)
	})
	e.pruneSelection()
	e.log.Debug("nodes deleted", "count", len(ids))
}

// DeleteSelection removes every selected node as one undoable operation.
func (e *Editor) DeleteSelection() {
	e.DeleteMany(e.sel.IDs())
}

// Connect joins nodes a and b per the connect protocol: source-type roots
// win the parent role, a root child is reparented, an owned child gains an
// extra connection. Cycle-closing and duplicate attempts are rejected
// before any mutation.
func (e *Editor) Connect(a, b string) error {
	page := e.doc.CurrentPage()
	if a == b || diagram.Find(page.Items, a) == nil || diagram.Find(page.Items, b) == nil {
		return nil
	}
	next, err := diagram.Connect(page.Items, a, b, RandomEdgeColor())
	if err != nil {
		e.log.Debug("connect rejected", "a", a, "b", b, "error", err)
		return err
	}
	e.history.Save(e.doc)
	page.Items = next
	e.commit()
	return nil
}

// Disconnect severs the edge between child and parent: extra connections
// are removed, primary edges demote the child subtree to a new root.
func (e *Editor) Disconnect(child, parent string) {
	items := e.doc.CurrentPage().Items
	node := diagram.Find(items, child)
	if node == nil {
		return
	}
	if !node.HasLink(parent) {
		owner := diagram.ParentOf(items, child)
		if owner == nil || owner.ID != parent {
			return
		}
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.Disconnect(items, child, parent)
	})
}

// DisconnectSelected severs the edge currently selected in link mode, if
// any, and clears the link selection.
func (e *Editor) DisconnectSelected() {
	link := e.sel.Link()
	if link == nil {
		return
	}
	e.Disconnect(link.Child, link.Parent)
	e.sel.Clear()
}

// Detach removes the node from its owner and promotes it to an independent
// root, keeping its children.
func (e *Editor) Detach(id string) {
	items := e.doc.CurrentPage().Items
	if diagram.Find(items, id) == nil || diagram.IsRoot(items, id) {
		return
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.Detach(items, id)
	})
}

// Duplicate deep-copies the node's subtree with fresh ids and inserts the
// copy beside the original: under the same parent, or as a new root.
// Returns the copy's id, or "" for an unknown original.
func (e *Editor) Duplicate(id string) string {
	page := e.doc.CurrentPage()
	original := diagram.Find(page.Items, id)
	if original == nil {
		return ""
	}
	clone := diagram.CloneSubtree(original)
	clone.Name = clone.Name + " (Copy)"
	parent := diagram.ParentOf(page.Items, id)
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		if parent == nil {
			return append(append([]*diagram.Node{}, items...), clone)
		}
		return diagram.InsertChild(items, parent.ID, clone)
	})
	return clone.ID
}

// Group wraps the node in a new distribution panel that takes its place and
// becomes its sole owner, inheriting the node's edge color. Source-type
// nodes cannot be grouped.
func (e *Editor) Group(id string) {
	page := e.doc.CurrentPage()
	node := diagram.Find(page.Items, id)
	if node == nil || node.Type.IsSource() {
		return
	}
	panel := diagram.NewNode(diagram.TypePanel)
	panel.EdgeColor = node.EdgeColor
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.WrapNode(items, id, panel)
	})
	e.log.Debug("node grouped", "id", id, "panel", panel.ID)
}

// ToggleCollapse flips the node's presentation collapse flag.
func (e *Editor) ToggleCollapse(id string) {
	node := diagram.Find(e.doc.CurrentPage().Items, id)
	if node == nil {
		return
	}
	collapsed := !node.Collapsed
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		return diagram.EditNode(items, id, diagram.NodePatch{Collapsed: &collapsed})
	})
}

// MoveNodes applies a drag batch of manual positions verbatim. Drags do not
// create history entries, but the change is still committed so persistence
// sees it.
func (e *Editor) MoveNodes(moves []NodeMove) {
	if len(moves) == 0 {
		return
	}
	page := e.doc.CurrentPage()
	for _, m := range moves {
		page.Items = diagram.SetPosition(page.Items, m.ID, m.X, m.Y)
	}
	e.commit()
}

// Undo reverts the most recent mutation. Active pointers are repaired and
// the selection is cleared, since it may reference nodes that no longer
// exist in the restored state.
func (e *Editor) Undo() bool {
	doc, ok := e.history.Undo(e.doc)
	if !ok {
		return false
	}
	e.doc = doc
	e.doc.RepairActive()
	e.sel.Clear()
	e.commit()
	return true
}

// Redo re-applies the most recently undone mutation.
func (e *Editor) Redo() bool {
	doc, ok := e.history.Redo(e.doc)
	if !ok {
		return false
	}
	e.doc = doc
	e.doc.RepairActive()
	e.sel.Clear()
	e.commit()
	return true
}

// Copy captures the selected node's subtree from the live state. With no
// single selection this is a silent no-op.
func (e *Editor) Copy() {
	id, ok := e.sel.Node()
	if !ok {
		return
	}
	node := diagram.Find(e.doc.CurrentPage().Items, id)
	if node == nil {
		return
	}
	e.clip = node.Clone()
}

// Paste inserts a fresh-id clone of the clipboard subtree under the
// selected node, or as a new root with no selection. Pushes exactly one
// history entry; an empty clipboard is a silent no-op.
func (e *Editor) Paste() string {
	if e.clip == nil {
		return ""
	}
	clone := diagram.CloneSubtree(e.clip)
	clone.Name = clone.Name + " (Copy)"
	target, hasTarget := e.sel.Node()
	if hasTarget && diagram.Find(e.doc.CurrentPage().Items, target) == nil {
		hasTarget = false
	}
	e.mutate(func(items []*diagram.Node) []*diagram.Node {
		if hasTarget {
			return diagram.InsertChild(items, target, clone)
		}
		return append(append([]*diagram.Node{}, items...), clone)
	})
	return clone.ID
}

// HasClipboard reports whether a paste would do anything.
func (e *Editor) HasClipboard() bool {
	return e.clip != nil
}

// ClickNode reports a renderer node click. Additive toggles multi-select
// membership.
func (e *Editor) ClickNode(id string, additive bool) {
	e.sel.ClickNode(id, additive)
}

// ClickLink reports a renderer click on the edge between child and parent.
func (e *Editor) ClickLink(child, parent string) {
	e.sel.ClickLink(child, parent)
}

// ClearSelection drops all selection state.
func (e *Editor) ClearSelection() {
	e.sel.Clear()
}

// SelectedNode returns the single selected node id, if exactly one node is
// selected.
func (e *Editor) SelectedNode() (string, bool) {
	return e.sel.Node()
}

// SelectedIDs returns the selected node ids in selection order.
func (e *Editor) SelectedIDs() []string {
	return e.sel.IDs()
}

// SelectedLink returns the selected edge in link mode, or nil.
func (e *Editor) SelectedLink() *LinkRef {
	return e.sel.Link()
}

// Search sets the live filter query. Matches are recomputed from the
// current forest on demand.
func (e *Editor) Search(query string) {
	e.query = query
}

// Matches returns the ids matching the current query and whether a filter
// is active at all. No active filter is distinct from zero matches.
func (e *Editor) Matches() (ids []string, active bool) {
	if strings.TrimSpace(e.query) == "" {
		return nil, false
	}
	return FindMatches(e.doc.CurrentPage().Items, e.query), true
}
