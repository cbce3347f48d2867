// Package roster provides the fixed per-archetype stat templates and the
// factory that builds player and enemy units from them.
package roster

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grimwire/crusade/internal/game/character"
)

//go:embed roster.yaml
var defaultRosterYAML []byte

// Template defines the stat profile for one archetype, loaded from YAML.
type Template struct {
	Archetype   character.Archetype `yaml:"archetype"`
	Name        string              `yaml:"name"`
	Health      int                 `yaml:"health"`
	AttackPower int                 `yaml:"attack_power"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff Archetype is a known tag, Name is non-empty,
// Health >= 1, and AttackPower >= 1; returns an error on the first violation.
func (t Template) Validate() error {
	if !t.Archetype.Valid() {
		return fmt.Errorf("roster template: unknown archetype %q", t.Archetype)
	}
	if t.Name == "" {
		return fmt.Errorf("roster template %q: name must not be empty", t.Archetype)
	}
	if t.Health < 1 {
		return fmt.Errorf("roster template %q: health must be >= 1, got %d", t.Archetype, t.Health)
	}
	if t.AttackPower < 1 {
		return fmt.Errorf("roster template %q: attack_power must be >= 1, got %d", t.Archetype, t.AttackPower)
	}
	return nil
}

// rosterFile is the top-level YAML structure for roster files.
type rosterFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadTemplatesFromBytes parses roster templates from raw YAML bytes.
//
// Precondition: data must be valid YAML conforming to the roster schema.
// Postcondition: Returns one validated template per known archetype, or an
// error. Every archetype of the closed set must be present exactly once.
func LoadTemplatesFromBytes(data []byte) (map[character.Archetype]Template, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}

	templates := make(map[character.Archetype]Template, len(file.Templates))
	for _, tmpl := range file.Templates {
		if err := tmpl.Validate(); err != nil {
			return nil, err
		}
		if _, dup := templates[tmpl.Archetype]; dup {
			return nil, fmt.Errorf("roster: duplicate template for archetype %q", tmpl.Archetype)
		}
		templates[tmpl.Archetype] = tmpl
	}

	if _, ok := templates[character.SpaceMarine]; !ok {
		return nil, fmt.Errorf("roster: missing player template %q", character.SpaceMarine)
	}
	for _, a := range character.EnemyArchetypes() {
		if _, ok := templates[a]; !ok {
			return nil, fmt.Errorf("roster: missing enemy template %q", a)
		}
	}

	return templates, nil
}

// LoadTemplatesFromFile reads and validates a roster YAML file.
//
// Precondition: path must point to a valid roster YAML file.
// Postcondition: Returns a complete template map or a non-nil error.
func LoadTemplatesFromFile(path string) (map[character.Archetype]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file %q: %w", path, err)
	}
	return LoadTemplatesFromBytes(data)
}

// DefaultTemplates returns the embedded canonical stat table.
//
// Postcondition: Returns a complete template map; panics if the embedded
// content is invalid, which indicates a build defect.
func DefaultTemplates() map[character.Archetype]Template {
	templates, err := LoadTemplatesFromBytes(defaultRosterYAML)
	if err != nil {
		panic("roster: embedded roster.yaml is invalid: " + err.Error())
	}
	return templates
}
