package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stridelab/stride/workout"
)

//go:embed data/*.yaml
var libraryFS embed.FS

// libraryFiles are the embedded template libraries, one per activity family.
var libraryFiles = []string{
	"data/tempo.yaml",
	"data/interval.yaml",
	"data/hill.yaml",
	"data/longrun.yaml",
	"data/bike.yaml",
	"data/rest.yaml",
}

// Library is a YAML-backed Provider for one activity family. It is
// immutable after construction; Random is its only non-deterministic call
// and draws from the injected Rand.
type Library struct {
	family    string
	templates []workout.Template
	bySub     map[string][]int
	rnd       Rand
}

type libraryFile struct {
	Family    string             `yaml:"family"`
	Templates []workout.Template `yaml:"workouts"`
}

// LoadLibrary decodes a library document and binds it to a randomness
// source.
func LoadLibrary(data []byte, rnd Rand) (*Library, error) {
	var file libraryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if file.Family == "" {
		return nil, fmt.Errorf("library has no family")
	}
	lib := &Library{
		family:    file.Family,
		templates: file.Templates,
		bySub:     make(map[string][]int),
		rnd:       rnd,
	}
	for i := range lib.templates {
		if lib.templates[i].Category == "" {
			lib.templates[i].Category = file.Family
		}
		sub := lib.templates[i].Subcategory
		if sub != "" {
			lib.bySub[sub] = append(lib.bySub[sub], i)
		}
	}
	return lib, nil
}

// Family implements Provider.
func (l *Library) Family() string { return l.family }

// Random implements Provider.
func (l *Library) Random(subcategory string) *workout.Template {
	idxs := l.candidateIndexes(subcategory)
	if len(idxs) == 0 {
		return nil
	}
	t := l.templates[idxs[l.rnd.Intn(len(idxs))]]
	return &t
}

// Subcategories returns the library's subcategory keys.
func (l *Library) Subcategories() []string {
	subs := make([]string, 0, len(l.bySub))
	for sub := range l.bySub {
		subs = append(subs, sub)
	}
	return subs
}

func (l *Library) candidateIndexes(subcategory string) []int {
	if subcategory == "" {
		idxs := make([]int, len(l.templates))
		for i := range l.templates {
			idxs[i] = i
		}
		return idxs
	}
	return l.bySub[subcategory]
}

// Prescribe implements Provider. Lookup is by normalized, case-folded name.
func (l *Library) Prescribe(name string, _ workout.Context) *workout.Template {
	want := strings.ToLower(Normalize(name))
	if want == "" {
		return nil
	}
	for i := range l.templates {
		if strings.ToLower(Normalize(l.templates[i].Name)) == want {
			t := l.templates[i]
			return &t
		}
	}
	return nil
}

// DefaultRegistry loads every embedded library plus the brick generator
// into a registry bound to rnd.
func DefaultRegistry(rnd Rand) (*Registry, error) {
	reg := NewRegistry()
	for _, path := range libraryFiles {
		data, err := libraryFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		lib, err := LoadLibrary(data, rnd)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		reg.Register(lib)
	}
	brick, err := loadBrickLibrary(rnd)
	if err != nil {
		return nil, err
	}
	reg.RegisterBrick(brick)
	reg.Register(brick)
	return reg, nil
}
