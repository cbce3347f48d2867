package narration

import "github.com/grimwire/crusade/internal/game/character"

// fallbackShouts maps archetype and attack success to a canned battle cry,
// used whenever the external narrator cannot produce one.
var fallbackShouts = map[character.Archetype]map[bool]string{
	character.SpaceMarine: {
		true:  "FOR THE EMPEROR! PURGE THE XENOS!",
		false: "By the Throne! I shall not fail!",
	},
	character.Ork: {
		true:  "WAAAGH! SMASH 'EM GOOD!",
		false: "OI! DAT AIN'T RIGHT!",
	},
	character.ChaosCultist: {
		true:  "BLOOD FOR THE BLOOD GOD! SKULLS FOR THE SKULL THRONE!",
		false: "The Dark Gods will grant me strength!",
	},
	character.Tyranid: {
		true:  "*SCREECHING ROAR* *BIOLOGICAL HORROR SOUNDS*",
		false: "*HISSING* *ALIEN GROWL*",
	},
	character.Necron: {
		true:  "Target eliminated. Proceeding to next objective.",
		false: "Recalibrating targeting systems.",
	},
	character.Eldar: {
		true:  "By Asuryan's grace, the enemy falls!",
		false: "The strands of fate shift... I must adapt.",
	},
	character.Tau: {
		true:  "For the Greater Good! Eliminate the threat!",
		false: "Tactical reassessment required.",
	},
}

// FallbackShout returns the canned battle cry for the given archetype and
// attack result.
//
// Postcondition: Returns a non-empty string for every archetype of the
// closed set, and a generic cry for anything else.
func FallbackShout(archetype character.Archetype, hit bool) string {
	if shouts, ok := fallbackShouts[archetype]; ok {
		return shouts[hit]
	}
	return "Battle cry!"
}

// characterVoices describes each archetype's manner of speech for the
// narrator prompt.
var characterVoices = map[character.Archetype]string{
	character.SpaceMarine:  "a Space Marine of the Adeptus Astartes, shouting battle cries in High Gothic and English",
	character.Ork:          "an Ork, shouting in crude, aggressive Orkish",
	character.ChaosCultist: "a Chaos Cultist, shrieking curses and invocations to the Dark Gods",
	character.Tyranid:      "a Tyranid, emitting biological screeches and roars",
	character.Necron:       "a Necron, speaking in a cold, emotionless mechanical voice",
	character.Eldar:        "an Eldar, speaking with refined elegance",
	character.Tau:          "a Tau, speaking with formal discipline",
}

// Voice returns the prompt description of the given archetype's manner of
// speech.
//
// Postcondition: Returns a non-empty description for every archetype of the
// closed set, and a generic one for anything else.
func Voice(archetype character.Archetype) string {
	if voice, ok := characterVoices[archetype]; ok {
		return voice
	}
	return "a grim warrior of the far future"
}
