// Package catalog defines the workout template catalog: the Provider lookup
// contract, a registry of providers keyed by activity family, and a
// YAML-backed implementation with injectable randomness.
package catalog

import (
	"math/rand"
	"time"

	"github.com/stridelab/stride/workout"
)

// Provider is the lookup contract for one activity family's template
// library. Implementations are read-only: the engine observes no mutable
// state across calls.
type Provider interface {
	// Family returns the activity family this provider serves
	// (tempo, interval, hill, longRun, bike, brick, rest).
	Family() string

	// Random returns a template drawn from the given subcategory, or from
	// the whole family when subcategory is empty. Returns nil when the
	// family has no matching templates.
	Random(subcategory string) *workout.Template

	// Prescribe looks up a template by name, normalizing decorations
	// first. Returns nil when no template matches.
	Prescribe(name string, ctx workout.Context) *workout.Template
}

// BrickRequest asks the brick generator for a combined run+equipment
// session at one intensity tier.
type BrickRequest struct {
	Intensity  string // recovery, aerobic, tempo, speed
	Equipment  string
	Difficulty string
}

// BrickGenerator produces combined run+equipment sessions.
type BrickGenerator interface {
	Generate(req BrickRequest) *workout.Template
}

// Rand is the single source of non-determinism in the catalog. Tests
// substitute a fixed sequence; production uses DefaultRand.
type Rand interface {
	Intn(n int) int
}

// DefaultRand returns a time-seeded Rand. Selection intentionally varies
// across production calls.
func DefaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Registry manages the available template providers.
type Registry struct {
	providers map[string]Provider
	brick     BrickGenerator
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	r.providers[p.Family()] = p
}

// RegisterBrick sets the registry's brick generator.
func (r *Registry) RegisterBrick(g BrickGenerator) {
	r.brick = g
}

// Get retrieves a provider by activity family.
func (r *Registry) Get(family string) (Provider, bool) {
	p, exists := r.providers[family]
	return p, exists
}

// Brick returns the registered brick generator, or nil.
func (r *Registry) Brick() BrickGenerator {
	return r.brick
}

// List returns all registered family names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Prescribe searches every registered family for a template matching name,
// trying the hinted family first. Returns nil when nothing matches.
func (r *Registry) Prescribe(name, family string, ctx workout.Context) *workout.Template {
	if p, ok := r.providers[family]; ok {
		if t := p.Prescribe(name, ctx); t != nil {
			return t
		}
	}
	for f, p := range r.providers {
		if f == family {
			continue
		}
		if t := p.Prescribe(name, ctx); t != nil {
			return t
		}
	}
	return nil
}
