// Package formatting turns a game state snapshot into the bounded
// plain-text block handed to the LLM as match context, including the
// nearest-landmark narration of hero and ward positions.
package formatting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dota-gsi-assistant/internal/gamestate"
	"dota-gsi-assistant/internal/metrics"
)

const (
	// Header prefixes every rendered context block.
	Header = "=== DOTA 2 GAME STATE ==="

	// NoStateText is returned when there is no snapshot to render.
	NoStateText = "No game state available."

	// UnknownHero is the hero name returned when none is known.
	UnknownHero = "Unknown Hero"

	heroNamePrefix = "npc_dota_hero_"
)

var titleCaser = cases.Title(language.English)

// Render converts a game state snapshot into a readable text block and
// extracts the player's hero name. Sections run least-salient first so
// the most strategically relevant lines sit closest to the question
// that follows them in the prompt. A section whose source data is
// empty or malformed is omitted rather than aborting the render.
func Render(state gamestate.GameState) (string, string) {
	timer := prometheus.NewTimer(metrics.RenderDuration)
	defer timer.ObserveDuration()

	if !hasData(state) {
		return NoStateText, UnknownHero
	}

	hero := state.Category("hero")
	heroName := UnknownHero
	if name, ok := hero["name"].(string); ok && name != "" {
		heroName = strings.TrimPrefix(name, heroNamePrefix)
	}

	var sections []string
	add := func(lines ...string) {
		for _, line := range lines {
			if line != "" {
				sections = append(sections, line)
			}
		}
	}

	add(mapSection(state.Category("map")))
	add(buildingsSection(state.Category("buildings"))...)
	add(playerSection(state.Category("player")))
	add(itemsSection(state.Category("items")))
	add(heroSection(hero))
	add(abilitiesSection(state.Category("abilities"), hero))
	add(minimapSection(state.Category("minimap"))...)
	add(rosterSection(state.Heroes("allies"), state.Heroes("enemies"))...)

	if len(sections) == 0 {
		return Header + "\nNo valid game state data available.", heroName
	}
	return Header + "\n" + strings.Join(sections, "\n"), heroName
}

func mapSection(mapData map[string]any) string {
	if len(mapData) == 0 {
		return ""
	}
	return fmt.Sprintf("Game State: %s, Match ID: %s, Game Time: %ds, Score: %d - %d",
		str(mapData, "game_state", "Unknown"),
		str(mapData, "matchid", "Unknown"),
		num(mapData, "game_time"),
		num(mapData, "radiant_score"),
		num(mapData, "dire_score"))
}

func buildingsSection(buildings map[string]any) []string {
	var lines []string
	for _, team := range sortedKeys(buildings) {
		teamBuildings, ok := buildings[team].(map[string]any)
		if !ok || len(teamBuildings) == 0 {
			continue
		}
		var entries []string
		for _, name := range sortedKeys(teamBuildings) {
			info, ok := teamBuildings[name].(map[string]any)
			if !ok {
				continue
			}
			maxHealth := num(info, "max_health")
			if maxHealth < 1 {
				maxHealth = 1
			}
			percent := int(math.Round(float64(num(info, "health")) / float64(maxHealth) * 100))
			entries = append(entries, fmt.Sprintf("%s(%d%%)", name, percent))
		}
		if len(entries) > 0 {
			lines = append(lines, fmt.Sprintf("%s Buildings: %s",
				titleCaser.String(team), strings.Join(entries, ", ")))
		}
	}
	return lines
}

func playerSection(player map[string]any) string {
	if len(player) == 0 {
		return ""
	}
	return fmt.Sprintf("Player: %s [Team: %s, K/D/A: %d/%d/%d, LH/DN: %d/%d, GPM/XPM: %d/%d]",
		str(player, "name", "Unknown"),
		str(player, "team_name", "Unknown"),
		num(player, "kills"),
		num(player, "deaths"),
		num(player, "assists"),
		num(player, "last_hits"),
		num(player, "denies"),
		num(player, "gpm"),
		num(player, "xpm"))
}

func itemsSection(items map[string]any) string {
	var entries []string
	for _, slot := range sortedKeys(items) {
		info, ok := items[slot].(map[string]any)
		if !ok {
			continue
		}
		name := strings.TrimPrefix(str(info, "name", ""), "item_")
		if name == "" || name == "empty" {
			continue
		}
		if charges := num(info, "charges"); charges > 0 {
			name = fmt.Sprintf("%s(%d)", name, charges)
		}
		entries = append(entries, name)
	}
	if len(entries) == 0 {
		return ""
	}
	return "Items: " + strings.Join(entries, ", ")
}

func heroSection(hero map[string]any) string {
	if len(hero) == 0 {
		return ""
	}
	return fmt.Sprintf("Hero: %s [Level %d, HP: %d/%d, MP: %d/%d]",
		strings.TrimPrefix(str(hero, "name", "Unknown"), heroNamePrefix),
		num(hero, "level"),
		num(hero, "health"),
		num(hero, "max_health"),
		num(hero, "mana"),
		num(hero, "max_mana"))
}

func abilitiesSection(abilities, hero map[string]any) string {
	heroPart := strings.TrimPrefix(str(hero, "name", ""), heroNamePrefix)

	var entries []string
	for _, key := range sortedKeys(abilities) {
		info, ok := abilities[key].(map[string]any)
		if !ok {
			continue
		}
		name := str(info, "name", "Unknown")
		if heroPart != "" {
			name = strings.TrimPrefix(name, heroPart+"_")
		}
		entries = append(entries, fmt.Sprintf("%s(Lv%d, CD:%d)",
			name, num(info, "level"), num(info, "cooldown")))
	}
	if len(entries) == 0 {
		return ""
	}
	return "Abilities: " + strings.Join(entries, ", ")
}

// minimapSection narrates hero and ward positions relative to the
// landmark table and counts the wards on the map. Minimap keys are
// walked in sorted order so the output is deterministic for a given
// snapshot.
func minimapSection(minimap map[string]any) []string {
	var lines []string
	observers, sentries := 0, 0

	for _, key := range sortedKeys(minimap) {
		obj, ok := minimap[key].(map[string]any)
		if !ok {
			continue
		}
		x, okX := coord(obj["xpos"])
		y, okY := coord(obj["ypos"])
		if !okX || !okY {
			continue
		}
		image := str(obj, "image", "")

		switch {
		case strings.Contains(image, "herocircle_self"):
			landmark, direction := Nearest(x, y, Landmarks)
			lines = append(lines, fmt.Sprintf("Hero is %s %s.", direction, landmark))
		case strings.Contains(image, "herocircle"):
			name := strings.TrimPrefix(str(obj, "name", ""), heroNamePrefix)
			landmark, direction := Nearest(x, y, Landmarks)
			lines = append(lines, fmt.Sprintf("%s is %s %s.", titleCaser.String(name), direction, landmark))
		}

		switch str(obj, "unitname", "") {
		case "npc_dota_observer_wards":
			observers++
			landmark, direction := Nearest(x, y, Landmarks)
			lines = append(lines, fmt.Sprintf("Observer ward %s %s.", direction, landmark))
		case "npc_dota_sentry_wards":
			sentries++
			landmark, direction := Nearest(x, y, Landmarks)
			lines = append(lines, fmt.Sprintf("Sentry ward %s %s.", direction, landmark))
		}
	}

	if observers > 0 || sentries > 0 {
		summary := fmt.Sprintf("Ward Summary: Observer(%d), Sentry(%d)", observers, sentries)
		lines = append([]string{summary}, lines...)
	}
	return lines
}

func rosterSection(allies, enemies []string) []string {
	var lines []string
	if len(allies) > 0 {
		lines = append(lines, "Allies: "+strings.Join(allies, ", "))
	}
	if len(enemies) > 0 {
		lines = append(lines, "Enemies: "+strings.Join(enemies, ", "))
	}
	return lines
}

// hasData reports whether any category carries anything renderable.
func hasData(state gamestate.GameState) bool {
	for _, value := range state {
		switch v := value.(type) {
		case map[string]any:
			if len(v) > 0 {
				return true
			}
		case []string:
			if len(v) > 0 {
				return true
			}
		case []any:
			if len(v) > 0 {
				return true
			}
		default:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func str(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// num reads a numeric field decoded from JSON; anything non-numeric
// counts as zero.
func num(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func coord(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	}
	return 0, false
}
