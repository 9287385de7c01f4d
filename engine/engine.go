package engine

import (
	"errors"

	"github.com/stridelab/stride/catalog"
)

// ErrMissingCategory is returned by Resolve when the workout reference
// carries no activity category. Without one, no fallback chain can pick
// category defaults.
var ErrMissingCategory = errors.New("workout reference has no activity category")

// Engine resolves workout references into display-ready records and
// generates categorized alternatives. It is a pure computation over the
// injected catalog registry and is safe for concurrent use.
type Engine struct {
	catalogs *catalog.Registry
}

// New creates an engine over the given catalog registry.
func New(reg *catalog.Registry) *Engine {
	return &Engine{catalogs: reg}
}

// Ref is an abstract reference to a scheduled workout, as a training plan
// stores it: a name, a category, and whatever display data the plan already
// carries. Plan-supplied fields outrank catalog template fields during
// resolution.
type Ref struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Focus       string `json:"focus,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
	Structure   string `json:"structure,omitempty"`

	// Scheduling metadata, carried through untouched.
	Day  string `json:"day,omitempty"`
	Week int    `json:"week,omitempty"`
}
