package fsm

import "github.com/layerkit/psimport/pkg/photoshop"

// RunRequest is the FSM input: the raw selection, before filtering.
type RunRequest struct {
	RunID string
	Paths []string
}

// RunResponse is the FSM output (accumulated across transitions)
type RunResponse struct {
	// From Filter
	Paths []string

	// From ResolveDocument
	Document *photoshop.DocumentInfo

	// From Import
	Succeeded int
	Failed    int

	// From Complete/Failed
	Status       string
	ErrorMessage string
}

// State names
const (
	StateFilter          = "filter"
	StateResolveDocument = "resolve_document"
	StateImport          = "import"
	StateComplete        = "complete"
	StateFailed          = "failed"
)

// Run statuses
const (
	StatusNothingToDo = "nothing_to_do"
	StatusImporting   = "importing"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)
