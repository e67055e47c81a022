package diagram

import (
	"encoding/json"
	"testing"
)

func TestPageLegacyRootNodeMigration(t *testing.T) {
	legacy := `{
		"id": "pg-1",
		"name": "Main",
		"rootNode": {
			"id": "n-1",
			"type": "grid",
			"name": "Utility",
			"children": [{"id": "n-2", "type": "panel", "name": "MDP"}]
		}
	}`

	var page Page
	if err := json.Unmarshal([]byte(legacy), &page); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected single migrated root, got %d", len(page.Items))
	}
	root := page.Items[0]
	if root.ID != "n-1" || root.Type != TypeGrid {
		t.Errorf("migrated root wrong: %+v", root)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "MDP" {
		t.Errorf("migrated subtree wrong: %+v", root.Children)
	}
}

func TestPageCurrentShapeWinsOverLegacy(t *testing.T) {
	// A file that somehow carries both shapes keeps the multi-root one.
	mixed := `{
		"id": "pg-1",
		"name": "Main",
		"items": [{"id": "n-1", "type": "load", "name": "L1"}],
		"rootNode": {"id": "n-9", "type": "grid", "name": "stale"}
	}`

	var page Page
	if err := json.Unmarshal([]byte(mixed), &page); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "n-1" {
		t.Errorf("items shape should win, got %+v", page.Items)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := NewDocument()
	page := doc.CurrentPage()
	page.Items = []*Node{
		testNode("A", TypeGrid, testNode("B", TypePanel)),
	}
	page.Items = AddLink(page.Items, "B", "A2")
	page.Items = append(page.Items, testNode("A2", TypeGenerator))

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var loaded Document
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if loaded.ActiveProject != doc.ActiveProject || loaded.ActivePage != doc.ActivePage {
		t.Error("active pointers lost in round trip")
	}
	items := loaded.CurrentPage().Items
	if len(items) != 2 || !Find(items, "B").HasLink("A2") {
		t.Errorf("forest lost in round trip: %+v", items)
	}
}
