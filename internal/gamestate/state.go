// Package gamestate holds the authoritative representation of the
// current Dota 2 match as pushed by the game client's Game State
// Integration feed, and the match-scoped hero identity tracking that is
// derived from it.
package gamestate

import "encoding/json"

// Categories lists the top-level payload categories the GSI feed can
// deliver. Anything else at the top level of a push is a client error.
var Categories = []string{
	"provider",
	"map",
	"player",
	"hero",
	"abilities",
	"items",
	"buildings",
	"draft",
	"minimap",
}

// GameState maps a category name to its JSON object, plus the derived
// "allies" and "enemies" hero lists maintained by the Store.
type GameState map[string]any

// Update is a single GSI push: a subset of the known categories, each
// an object (possibly empty).
type Update map[string]map[string]any

// KnownCategory reports whether name is one of the GSI payload
// categories.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Empty reports whether every category in the update is empty. The game
// client sends such heartbeats between meaningful ticks.
func (u Update) Empty() bool {
	for _, data := range u {
		if len(data) > 0 {
			return false
		}
	}
	return true
}

// Category returns the named category as an object, or nil when it is
// absent or not an object (e.g. the derived hero lists).
func (s GameState) Category(name string) map[string]any {
	obj, _ := s[name].(map[string]any)
	return obj
}

// Heroes returns the derived ally or enemy roster stored under key.
func (s GameState) Heroes(key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		// Round-tripped through JSON.
		names := make([]string, 0, len(v))
		for _, n := range v {
			if name, ok := n.(string); ok {
				names = append(names, name)
			}
		}
		return names
	}
	return nil
}

// Clone returns a deep copy of the state so readers can never mutate
// the Store's view. State is JSON-shaped by construction, so a marshal
// round trip is the whole job.
func (s GameState) Clone() GameState {
	if s == nil {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return GameState{}
	}
	var out GameState
	if err := json.Unmarshal(raw, &out); err != nil {
		return GameState{}
	}
	return out
}
