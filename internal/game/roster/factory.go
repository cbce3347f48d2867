package roster

import (
	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/dice"
)

// DefaultEnemyArchetype is the fixed fallback used when NewEnemy is given an
// unrecognized tag. The permissive fallback keeps enemy construction total;
// callers that want strict validation check Archetype.Valid() first.
const DefaultEnemyArchetype = character.Ork

// Factory builds player and enemy units from a loaded template table.
//
// Invariant: templates is complete — one entry per archetype of the closed set.
type Factory struct {
	templates map[character.Archetype]Template
}

// NewFactory creates a Factory over the given template table.
//
// Precondition: templates must come from LoadTemplatesFromBytes or
// DefaultTemplates (completeness already validated).
func NewFactory(templates map[character.Archetype]Template) *Factory {
	return &Factory{templates: templates}
}

// NewDefaultFactory creates a Factory over the embedded canonical table.
func NewDefaultFactory() *Factory {
	return NewFactory(DefaultTemplates())
}

// NewPlayer builds the player unit with the given display name. An empty name
// falls back to the template's display name.
//
// Postcondition: Returns a full-health player unit with the space_marine
// stat profile.
func (f *Factory) NewPlayer(name string) *character.Character {
	tmpl := f.templates[character.SpaceMarine]
	if name == "" {
		name = tmpl.Name
	}
	return &character.Character{
		Name:        name,
		Archetype:   character.SpaceMarine,
		Kind:        character.KindPlayer,
		Health:      tmpl.Health,
		MaxHealth:   tmpl.Health,
		AttackPower: tmpl.AttackPower,
	}
}

// NewEnemy builds an enemy unit for the given archetype. An unrecognized tag
// falls back to DefaultEnemyArchetype.
//
// Postcondition: Returns a full-health enemy unit; the returned unit's
// archetype is always a member of the closed set.
func (f *Factory) NewEnemy(archetype character.Archetype) *character.Character {
	tmpl, ok := f.templates[archetype]
	if !ok || archetype == character.SpaceMarine {
		archetype = DefaultEnemyArchetype
		tmpl = f.templates[archetype]
	}
	return &character.Character{
		Name:        tmpl.Name,
		Archetype:   archetype,
		Kind:        character.KindEnemy,
		Health:      tmpl.Health,
		MaxHealth:   tmpl.Health,
		AttackPower: tmpl.AttackPower,
	}
}

// RandomEnemy builds an enemy unit with an archetype drawn uniformly from the
// six enemy archetypes.
//
// Precondition: src must be non-nil.
func (f *Factory) RandomEnemy(src dice.Source) *character.Character {
	enemies := character.EnemyArchetypes()
	return f.NewEnemy(enemies[src.Intn(len(enemies))])
}
