// Package importer parses external project files into document values. It
// accepts either a single project or an array of projects in the document's
// JSON shape, applying the same legacy page migration persistence uses.
// Merging into a live document (including project-id collision handling)
// belongs to the editor; this package only parses and checks structure.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"

	"sld/diagram"
)

// ErrBadImport is returned for input that is not a project document.
var ErrBadImport = errors.New("importer: input is not a project document")

// Import parses one project or an array of projects. Structural problems —
// unparseable JSON, a project with no pages — are all reported as
// ErrBadImport so callers can fall back without inspecting causes.
func Import(data []byte) ([]*diagram.Project, error) {
	var projects []*diagram.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		var single diagram.Project
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadImport, err)
		}
		projects = []*diagram.Project{&single}
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("%w: no projects", ErrBadImport)
	}
	for _, p := range projects {
		if err := checkProject(p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func checkProject(p *diagram.Project) error {
	if p == nil || len(p.Pages) == 0 {
		return fmt.Errorf("%w: project without pages", ErrBadImport)
	}
	// Ids may be absent in hand-written files; mint what is missing.
	if p.ID == "" {
		p.ID = diagram.NewProjectID()
	}
	if p.Name == "" {
		p.Name = "Imported Project"
	}
	for _, page := range p.Pages {
		if page == nil {
			return fmt.Errorf("%w: null page", ErrBadImport)
		}
		if page.ID == "" {
			page.ID = diagram.NewPageID()
		}
		if errs := diagram.Validate(page.Items); len(errs) > 0 {
			return fmt.Errorf("%w: page %s: %s", ErrBadImport, page.ID, errs[0])
		}
	}
	return nil
}
