package editor

import "sld/diagram"

// Project and page lifecycle. These mutate document structure above the
// active forest, with the same snapshot-first discipline, and guard the
// "at least one project, at least one page" invariants.

// AddPage appends an empty page to the active project, makes it active and
// returns its id.
func (e *Editor) AddPage(name string) string {
	e.history.Save(e.doc)
	page := diagram.NewPage(name)
	project := e.doc.CurrentProject()
	project.Pages = append(project.Pages, page)
	e.doc.ActivePage = page.ID
	e.sel.Clear()
	e.commit()
	return page.ID
}

// RenamePage sets the page's name. Unknown ids are a no-op.
func (e *Editor) RenamePage(id, name string) {
	page := e.doc.CurrentProject().FindPage(id)
	if page == nil {
		return
	}
	e.history.Save(e.doc)
	page.Name = name
	e.commit()
}

// DeletePage removes a page from the active project. Removing the last
// remaining page is rejected before any mutation; removing the active page
// falls back to the first remaining one.
func (e *Editor) DeletePage(id string) error {
	project := e.doc.CurrentProject()
	if len(project.Pages) <= 1 {
		return ErrLastPage
	}
	if project.FindPage(id) == nil {
		return nil
	}
	e.history.Save(e.doc)
	pages := make([]*diagram.Page, 0, len(project.Pages)-1)
	for _, p := range project.Pages {
		if p.ID != id {
			pages = append(pages, p)
		}
	}
	project.Pages = pages
	e.doc.RepairActive()
	e.sel.Clear()
	e.commit()
	return nil
}

// SetActivePage switches the active page. Selection is transient UI state
// and is cleared; history is untouched.
func (e *Editor) SetActivePage(id string) {
	if e.doc.CurrentProject().FindPage(id) == nil {
		return
	}
	e.doc.ActivePage = id
	e.sel.Clear()
	e.query = ""
}

// AddProject appends a new project with one empty page, makes it active
// and returns its id.
func (e *Editor) AddProject(name string) string {
	e.history.Save(e.doc)
	project := diagram.NewProject(name)
	e.doc.Projects = append(e.doc.Projects, project)
	e.doc.ActiveProject = project.ID
	e.doc.ActivePage = project.Pages[0].ID
	e.sel.Clear()
	e.commit()
	return project.ID
}

// RenameProject sets the project's name. Unknown ids are a no-op.
func (e *Editor) RenameProject(id, name string) {
	project := e.doc.FindProject(id)
	if project == nil {
		return
	}
	e.history.Save(e.doc)
	project.Name = name
	e.commit()
}

// DeleteProject removes a project. Removing the last remaining project is
// rejected before any mutation; removing the active project falls back to
// the first remaining one.
func (e *Editor) DeleteProject(id string) error {
	if len(e.doc.Projects) <= 1 {
		return ErrLastProject
	}
	if e.doc.FindProject(id) == nil {
		return nil
	}
	e.history.Save(e.doc)
	projects := make([]*diagram.Project, 0, len(e.doc.Projects)-1)
	for _, p := range e.doc.Projects {
		if p.ID != id {
			projects = append(projects, p)
		}
	}
	e.doc.Projects = projects
	e.doc.RepairActive()
	e.sel.Clear()
	e.commit()
	return nil
}

// SetActiveProject switches the active project, activating its first page.
// Selection is cleared; history is untouched.
func (e *Editor) SetActiveProject(id string) {
	project := e.doc.FindProject(id)
	if project == nil {
		return
	}
	e.doc.ActiveProject = id
	e.doc.ActivePage = project.Pages[0].ID
	e.sel.Clear()
	e.query = ""
}

// AddProjects merges imported projects into the document as one undoable
// operation, reassigning fresh ids to any project whose id collides with an
// existing one.
func (e *Editor) AddProjects(projects []*diagram.Project) {
	if len(projects) == 0 {
		return
	}
	e.history.Save(e.doc)
	for _, p := range projects {
		if e.doc.FindProject(p.ID) != nil {
			p.ID = diagram.NewProjectID()
		}
		e.doc.Projects = append(e.doc.Projects, p)
	}
	e.commit()
	e.log.Info("projects imported", "count", len(projects))
}

// Reset replaces the whole document with a fresh default one. The previous
// state stays reachable through undo; the boundary confirms this
// destructive action before calling.
func (e *Editor) Reset() {
	e.history.Save(e.doc)
	e.doc = diagram.NewDocument()
	e.sel.Clear()
	e.query = ""
	e.clip = nil
	e.commit()
}
