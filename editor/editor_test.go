package editor

import (
	"errors"
	"reflect"
	"testing"

	"sld/diagram"
)

func newTestEditor() *Editor {
	return New(nil, nil)
}

func TestAddRootAndChild(t *testing.T) {
	e := newTestEditor()

	gridID := e.AddRoot(diagram.TypeGrid)
	panelID := e.AddChild(gridID, diagram.TypePanel)

	items := e.Page().Items
	if len(items) != 1 || items[0].ID != gridID {
		t.Fatalf("expected single root, got %d", len(items))
	}
	if len(items[0].Children) != 1 || items[0].Children[0].ID != panelID {
		t.Fatal("child not inserted under root")
	}
	if items[0].Children[0].EdgeColor == "" {
		t.Error("first child should receive a generated edge color")
	}

	if id := e.AddChild("missing", diagram.TypeLoad); id != "" {
		t.Error("adding under an unknown parent should return empty id")
	}
}

func TestSiblingEdgeColorShared(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	first := e.AddChild(gridID, diagram.TypePanel)
	second := e.AddChild(gridID, diagram.TypeLoad)

	items := e.Page().Items
	a := diagram.Find(items, first)
	b := diagram.Find(items, second)
	if a.EdgeColor != b.EdgeColor {
		t.Errorf("siblings should share an edge color: %q vs %q", a.EdgeColor, b.EdgeColor)
	}
}

func TestUndoRedoInverse(t *testing.T) {
	e := newTestEditor()
	e.AddRoot(diagram.TypeGrid)
	before := e.Document().Clone()

	e.AddRoot(diagram.TypeGenerator)
	after := e.Document().Clone()

	if !e.Undo() {
		t.Fatal("undo should succeed")
	}
	if !reflect.DeepEqual(e.Document(), before) {
		t.Error("undo(mutate(state)) != state")
	}

	if !e.Redo() {
		t.Fatal("redo should succeed")
	}
	if !reflect.DeepEqual(e.Document(), after) {
		t.Error("redo(undo(mutate(state))) != mutate(state)")
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	e := newTestEditor()
	e.AddRoot(diagram.TypeGrid)
	e.AddRoot(diagram.TypeGenerator)
	e.Undo()

	if !e.CanRedo() {
		t.Fatal("redo should be available after undo")
	}
	e.AddRoot(diagram.TypeLoad)
	if e.CanRedo() {
		t.Error("a new mutation must clear the redo stack")
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	e := newTestEditor()
	if e.Undo() {
		t.Error("undo with empty history should be a no-op")
	}
	if e.Redo() {
		t.Error("redo with empty history should be a no-op")
	}
}

func TestConnectRejectionLeavesNoHistoryEntry(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	panelID := e.AddChild(gridID, diagram.TypePanel)
	loadID := e.AddChild(panelID, diagram.TypeLoad)

	undoBefore, _ := e.history.Depth()
	err := e.Connect(panelID, loadID) // load is panel's own descendant
	if !errors.Is(err, diagram.ErrWouldCycle) {
		t.Fatalf("expected ErrWouldCycle, got %v", err)
	}
	undoAfter, _ := e.history.Depth()
	if undoAfter != undoBefore {
		t.Error("a rejected connect must not push a history entry")
	}
}

func TestStructuralNoOpsLeaveHistoryEmpty(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	panelID := e.AddChild(gridID, diagram.TypePanel)
	e.history.Clear()

	if err := e.Connect("missing", panelID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.Connect(gridID, gridID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.Detach("missing")
	e.Detach(gridID) // already a root
	e.Disconnect("missing", gridID)
	e.Disconnect(panelID, "missing") // no such edge

	if e.CanUndo() {
		t.Fatal("no-ops must not push undo entries")
	}
}

func TestDeleteRepairsSelection(t *testing.T) {
	e := newTestEditor()
	id := e.AddRoot(diagram.TypeLoad)
	e.ClickNode(id, false)

	e.Delete(id)
	if _, ok := e.SelectedNode(); ok {
		t.Error("selection should drop deleted nodes")
	}
	if diagram.Find(e.Page().Items, id) != nil {
		t.Error("node should be gone")
	}
}

func TestDeleteDropsSelectedDescendants(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	panelID := e.AddChild(gridID, diagram.TypePanel)
	loadID := e.AddChild(panelID, diagram.TypeLoad)
	other := e.AddRoot(diagram.TypeGenerator)

	// Multi-select the panel, a node inside its subtree, and a survivor.
	e.ClickNode(panelID, false)
	e.ClickNode(loadID, true)
	e.ClickNode(other, true)

	e.Delete(panelID)

	ids := e.SelectedIDs()
	if len(ids) != 1 || ids[0] != other {
		t.Errorf("only the surviving node should stay selected, got %v", ids)
	}
}

func TestDeleteSelectionBulk(t *testing.T) {
	e := newTestEditor()
	a := e.AddRoot(diagram.TypeGrid)
	b := e.AddRoot(diagram.TypeGenerator)
	e.AddRoot(diagram.TypeLoad)

	e.ClickNode(a, false)
	e.ClickNode(b, true)
	e.DeleteSelection()

	if len(e.Page().Items) != 1 {
		t.Fatalf("expected one surviving root, got %d", len(e.Page().Items))
	}

	// One undo restores both.
	e.Undo()
	if len(e.Page().Items) != 3 {
		t.Errorf("bulk delete should be one history entry, got %d roots after undo", len(e.Page().Items))
	}
}

func TestMoveNodesSkipsHistory(t *testing.T) {
	e := newTestEditor()
	id := e.AddRoot(diagram.TypeLoad)
	undoBefore, _ := e.history.Depth()

	e.MoveNodes([]NodeMove{{ID: id, X: 100, Y: 250}})

	undoAfter, _ := e.history.Depth()
	if undoAfter != undoBefore {
		t.Error("drag moves must not create history entries")
	}
	n := diagram.Find(e.Page().Items, id)
	if n.ManualX == nil || *n.ManualX != 100 || *n.ManualY != 250 {
		t.Error("positions should be applied verbatim")
	}
}

func TestMoveNodesStillCommits(t *testing.T) {
	e := newTestEditor()
	id := e.AddRoot(diagram.TypeLoad)

	commits := 0
	e.OnCommit(func(*diagram.Document) { commits++ })
	e.MoveNodes([]NodeMove{{ID: id, X: 1, Y: 2}})
	if commits != 1 {
		t.Errorf("expected persistence hook to fire once, got %d", commits)
	}
}

func TestGroupWrapsInPanel(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	loadID := e.AddChild(gridID, diagram.TypeLoad)

	e.Group(loadID)
	grid := diagram.Find(e.Page().Items, gridID)
	if len(grid.Children) != 1 {
		t.Fatal("grid should still own exactly one child")
	}
	panel := grid.Children[0]
	if panel.Type != diagram.TypePanel {
		t.Fatalf("expected wrapping panel, got %s", panel.Type)
	}
	if len(panel.Children) != 1 || panel.Children[0].ID != loadID {
		t.Error("panel should own the original node")
	}
	load := diagram.Find(e.Page().Items, loadID)
	if panel.EdgeColor != load.EdgeColor {
		t.Error("panel should inherit the wrapped node's edge color")
	}
}

func TestGroupRefusesSourceTypes(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	e.Group(gridID)
	if e.Page().Items[0].Type != diagram.TypeGrid {
		t.Error("source-type nodes must not be grouped")
	}
}

func TestDuplicateInsertsSibling(t *testing.T) {
	e := newTestEditor()
	gridID := e.AddRoot(diagram.TypeGrid)
	panelID := e.AddChild(gridID, diagram.TypePanel)
	e.AddChild(panelID, diagram.TypeLoad)

	copyID := e.Duplicate(panelID)
	grid := diagram.Find(e.Page().Items, gridID)
	if len(grid.Children) != 2 {
		t.Fatalf("expected original and copy under grid, got %d", len(grid.Children))
	}
	cp := diagram.Find(e.Page().Items, copyID)
	if cp == nil || len(cp.Children) != 1 {
		t.Fatal("copy should carry the whole subtree")
	}
	if cp.Name != "Distribution Panel (Copy)" {
		t.Errorf("copy name = %q", cp.Name)
	}
}

func TestPageLifecycle(t *testing.T) {
	e := newTestEditor()
	first := e.Page().ID

	if err := e.DeletePage(first); !errors.Is(err, ErrLastPage) {
		t.Fatalf("expected ErrLastPage, got %v", err)
	}

	second := e.AddPage("Page 2")
	if e.Page().ID != second {
		t.Error("new page should become active")
	}

	if err := e.DeletePage(second); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.Page().ID != first {
		t.Error("deleting the active page must fall back to the first remaining")
	}
}

func TestProjectLifecycle(t *testing.T) {
	e := newTestEditor()
	first := e.Document().ActiveProject

	if err := e.DeleteProject(first); !errors.Is(err, ErrLastProject) {
		t.Fatalf("expected ErrLastProject, got %v", err)
	}

	second := e.AddProject("Expansion")
	if e.Document().ActiveProject != second {
		t.Error("new project should become active")
	}
	if e.Page() == nil {
		t.Fatal("new project's first page should be active")
	}

	if err := e.DeleteProject(second); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if e.Document().ActiveProject != first {
		t.Error("deleting the active project must fall back to the first remaining")
	}
}

func TestAddProjectsReassignsCollidingIDs(t *testing.T) {
	e := newTestEditor()
	existing := e.Document().ActiveProject

	imported := diagram.NewProject("Imported")
	imported.ID = existing
	e.AddProjects([]*diagram.Project{imported})

	if len(e.Document().Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(e.Document().Projects))
	}
	if e.Document().Projects[1].ID == existing {
		t.Error("colliding project id should be reassigned")
	}
}

func TestSwitchingPageKeepsHistory(t *testing.T) {
	e := newTestEditor()
	e.AddRoot(diagram.TypeGrid)
	second := e.AddPage("Page 2")
	undoBefore, _ := e.history.Depth()

	e.SetActivePage(second)
	undoAfter, _ := e.history.Depth()
	if undoAfter != undoBefore {
		t.Error("switching pages must not touch history")
	}
}

func TestResetIsUndoable(t *testing.T) {
	e := newTestEditor()
	e.AddRoot(diagram.TypeGrid)
	e.Reset()

	if len(e.Page().Items) != 0 {
		t.Fatal("reset should produce an empty default document")
	}
	e.Undo()
	if len(e.Page().Items) != 1 {
		t.Error("reset should be undoable")
	}
}
