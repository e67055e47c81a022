package importer

import (
	"errors"
	"testing"

	"sld/diagram"
)

func TestImportSingleProject(t *testing.T) {
	input := `{
		"id": "pr-1",
		"name": "Plant",
		"pages": [{"id": "pg-1", "name": "Main", "items": [
			{"id": "n-1", "type": "grid", "name": "Utility"}
		]}]
	}`

	projects, err := Import([]byte(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Plant" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
	if len(projects[0].Pages[0].Items) != 1 {
		t.Error("page forest lost")
	}
}

func TestImportProjectArray(t *testing.T) {
	input := `[
		{"id": "pr-1", "name": "A", "pages": [{"id": "pg-1", "name": "P", "items": []}]},
		{"id": "pr-2", "name": "B", "pages": [{"id": "pg-2", "name": "P", "items": []}]}
	]`

	projects, err := Import([]byte(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
}

func TestImportLegacyPageShape(t *testing.T) {
	input := `{
		"name": "Old File",
		"pages": [{"id": "pg-1", "name": "Main",
			"rootNode": {"id": "n-1", "type": "grid", "name": "Utility"}}]
	}`

	projects, err := Import([]byte(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	items := projects[0].Pages[0].Items
	if len(items) != 1 || items[0].ID != "n-1" {
		t.Errorf("legacy rootNode not migrated: %+v", items)
	}
	if projects[0].ID == "" {
		t.Error("missing project id should be minted")
	}
}

func TestImportRejectsBadStructure(t *testing.T) {
	inputs := []string{
		`not json at all`,
		`{"name": "No Pages", "pages": []}`,
		`[]`,
		`{"name": "Null Page", "pages": [null]}`,
	}
	for _, input := range inputs {
		if _, err := Import([]byte(input)); !errors.Is(err, ErrBadImport) {
			t.Errorf("input %q: expected ErrBadImport, got %v", input, err)
		}
	}
}

func TestImportRejectsInvalidForest(t *testing.T) {
	input := `{
		"name": "Dup IDs",
		"pages": [{"id": "pg-1", "name": "Main", "items": [
			{"id": "n-1", "type": "grid", "name": "A"},
			{"id": "n-1", "type": "load", "name": "B"}
		]}]
	}`
	if _, err := Import([]byte(input)); !errors.Is(err, ErrBadImport) {
		t.Errorf("expected ErrBadImport for duplicate ids, got %v", err)
	}
}

func TestImportedProjectsMergeable(t *testing.T) {
	// End to end with the diagram model: imported pages behave like native
	// ones.
	input := `{
		"name": "Plant",
		"pages": [{"id": "pg-1", "name": "Main", "items": [
			{"id": "n-1", "type": "grid", "name": "Utility",
			 "children": [{"id": "n-2", "type": "panel", "name": "MDP"}]}
		]}]
	}`
	projects, err := Import([]byte(input))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	items := projects[0].Pages[0].Items
	if n := diagram.Find(items, "n-2"); n == nil || n.Type != diagram.TypePanel {
		t.Errorf("imported forest not navigable: %+v", n)
	}
}
