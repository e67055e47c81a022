// Package diagram contains the document model for electrical single-line
// diagrams: nodes, pages, projects and the pure structural operations over
// them. Values are immutable by convention; every operation returns a new
// forest and leaves its input untouched.
package diagram

// NodeType identifies the kind of electrical component a node represents.
type NodeType string

const (
	TypeGrid        NodeType = "grid"        // utility/grid feed
	TypeGenerator   NodeType = "generator"   // standby or prime generator
	TypeTransformer NodeType = "transformer" // step-up/step-down transformer
	TypePanel       NodeType = "panel"       // distribution board/panelboard
	TypeBreaker     NodeType = "breaker"     // circuit breaker or switch
	TypeUPS         NodeType = "ups"         // uninterruptible power supply
	TypeMotor       NodeType = "motor"       // motor load
	TypeLoad        NodeType = "load"        // generic load
)

// IsSource reports whether the type represents an external power source.
// Only grid feeds and generators count; this drives edge direction when
// two nodes are connected.
func (t NodeType) IsSource() bool {
	return t == TypeGrid || t == TypeGenerator
}

// String returns the human-readable name of the type.
func (t NodeType) String() string {
	switch t {
	case TypeGrid:
		return "Grid Feed"
	case TypeGenerator:
		return "Generator"
	case TypeTransformer:
		return "Transformer"
	case TypePanel:
		return "Distribution Panel"
	case TypeBreaker:
		return "Breaker"
	case TypeUPS:
		return "UPS"
	case TypeMotor:
		return "Motor"
	case TypeLoad:
		return "Load"
	default:
		return "Unknown"
	}
}

// DefaultName returns the name given to a freshly created node of this type.
func (t NodeType) DefaultName() string {
	return t.String()
}

// DefaultDescription returns the description given to a freshly created node.
func (t NodeType) DefaultDescription() string {
	switch t {
	case TypeGrid:
		return "Incoming utility supply"
	case TypeGenerator:
		return "On-site generation"
	case TypeTransformer:
		return "Voltage transformation"
	case TypePanel:
		return "Power distribution"
	case TypeUPS:
		return "Battery-backed supply"
	default:
		return ""
	}
}

// Node is one electrical component or subsystem in a diagram.
//
// Children is the primary ownership relation: a node belongs to exactly one
// parent (or is a forest root) and power flows parent to child.
// ExtraConnections holds ids of additional upstream feeds layered on top of
// the tree; they are references, never ownership.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`

	Model           string `json:"model,omitempty"`
	Amperage        string `json:"amperage,omitempty"`
	Voltage         string `json:"voltage,omitempty"`
	KVA             string `json:"kva,omitempty"`
	HasMeter        bool   `json:"hasMeter,omitempty"`
	MeterNumber     string `json:"meterNumber,omitempty"`
	ComponentNumber string `json:"componentNumber,omitempty"`
	Color           string `json:"color,omitempty"`
	Shape           string `json:"shape,omitempty"`
	Image           string `json:"image,omitempty"`

	// EdgeColor is a rendering hint for the edge joining this node to its
	// parent; siblings typically share a color.
	EdgeColor string `json:"edgeColor,omitempty"`

	// Collapsed is a presentation flag with no structural meaning.
	Collapsed bool `json:"collapsed,omitempty"`

	// ManualX/ManualY are user-overridden layout positions, consumed only
	// by the external renderer. Nil means "let the renderer decide".
	ManualX *float64 `json:"manualX,omitempty"`
	ManualY *float64 `json:"manualY,omitempty"`

	Children         []*Node  `json:"children,omitempty"`
	ExtraConnections []string `json:"extraConnections,omitempty"`
}

// NewNode creates a node of the given type with a fresh id and the type's
// default name and description.
func NewNode(t NodeType) *Node {
	return &Node{
		ID:          NewNodeID(),
		Type:        t,
		Name:        t.DefaultName(),
		Description: t.DefaultDescription(),
	}
}

// Clone creates a deep copy of the node and its subtree, preserving ids.
// Used for history snapshots and clipboard capture.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := *n
	if n.ManualX != nil {
		x := *n.ManualX
		clone.ManualX = &x
	}
	if n.ManualY != nil {
		y := *n.ManualY
		clone.ManualY = &y
	}
	if n.ExtraConnections != nil {
		clone.ExtraConnections = make([]string, len(n.ExtraConnections))
		copy(clone.ExtraConnections, n.ExtraConnections)
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			clone.Children[i] = c.Clone()
		}
	}
	return &clone
}

// Page holds one forest: an ordered set of independent root nodes.
type Page struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Items []*Node `json:"items"`
}

// NewPage creates an empty page with a fresh id.
func NewPage(name string) *Page {
	return &Page{ID: NewPageID(), Name: name}
}

// Clone creates a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	clone := &Page{ID: p.ID, Name: p.Name}
	if p.Items != nil {
		clone.Items = make([]*Node, len(p.Items))
		for i, n := range p.Items {
			clone.Items[i] = n.Clone()
		}
	}
	return clone
}

// Project is a named collection of pages. A project always has at least
// one page.
type Project struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Pages []*Page `json:"pages"`

	// PrintLayout is free-form print metadata (paper size, orientation).
	PrintLayout map[string]string `json:"printLayout,omitempty"`
}

// NewProject creates a project containing a single empty page.
func NewProject(name string) *Project {
	return &Project{
		ID:    NewProjectID(),
		Name:  name,
		Pages: []*Page{NewPage("Page 1")},
	}
}

// Clone creates a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	clone := &Project{ID: p.ID, Name: p.Name}
	if p.Pages != nil {
		clone.Pages = make([]*Page, len(p.Pages))
		for i, pg := range p.Pages {
			clone.Pages[i] = pg.Clone()
		}
	}
	if p.PrintLayout != nil {
		clone.PrintLayout = make(map[string]string, len(p.PrintLayout))
		for k, v := range p.PrintLayout {
			clone.PrintLayout[k] = v
		}
	}
	return clone
}

// FindPage returns the page with the given id, or nil.
func (p *Project) FindPage(id string) *Page {
	for _, pg := range p.Pages {
		if pg.ID == id {
			return pg
		}
	}
	return nil
}

// Document is the full editor state: all projects plus the currently
// active project and page ids.
type Document struct {
	Projects      []*Project `json:"projects"`
	ActiveProject string     `json:"activeProject"`
	ActivePage    string     `json:"activePage"`
}

// NewDocument creates a document with one empty project, which is active.
func NewDocument() *Document {
	p := NewProject("Project 1")
	return &Document{
		Projects:      []*Project{p},
		ActiveProject: p.ID,
		ActivePage:    p.Pages[0].ID,
	}
}

// Clone creates a deep copy of the document. This is the snapshot unit for
// undo/redo history.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{
		ActiveProject: d.ActiveProject,
		ActivePage:    d.ActivePage,
	}
	if d.Projects != nil {
		clone.Projects = make([]*Project, len(d.Projects))
		for i, p := range d.Projects {
			clone.Projects[i] = p.Clone()
		}
	}
	return clone
}

// FindProject returns the project with the given id, or nil.
func (d *Document) FindProject(id string) *Project {
	for _, p := range d.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentProject returns the active project. RepairActive must have run
// since the last mutation for this to be non-nil on a valid document.
func (d *Document) CurrentProject() *Project {
	return d.FindProject(d.ActiveProject)
}

// CurrentPage returns the active page of the active project, or nil.
func (d *Document) CurrentPage() *Page {
	p := d.CurrentProject()
	if p == nil {
		return nil
	}
	return p.FindPage(d.ActivePage)
}

// RepairActive makes the active project/page ids resolve again after a
// mutation that may have removed them, falling back to the first remaining
// project and its first page.
func (d *Document) RepairActive() {
	if len(d.Projects) == 0 {
		return
	}
	p := d.FindProject(d.ActiveProject)
	if p == nil {
		p = d.Projects[0]
		d.ActiveProject = p.ID
		d.ActivePage = ""
	}
	if len(p.Pages) == 0 {
		return
	}
	if p.FindPage(d.ActivePage) == nil {
		d.ActivePage = p.Pages[0].ID
	}
}
