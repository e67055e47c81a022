package diagram

import "github.com/google/uuid"

// Id prefixes make it obvious in logs and saved files what kind of entity
// an id refers to.
const (
	nodeIDPrefix    = "n-"
	pageIDPrefix    = "pg-"
	projectIDPrefix = "pr-"
)

// NewNodeID returns a process-unique node id.
func NewNodeID() string {
	return nodeIDPrefix + uuid.NewString()
}

// NewPageID returns a process-unique page id.
func NewPageID() string {
	return pageIDPrefix + uuid.NewString()
}

// NewProjectID returns a process-unique project id.
func NewProjectID() string {
	return projectIDPrefix + uuid.NewString()
}
