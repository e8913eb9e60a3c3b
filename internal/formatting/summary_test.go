package formatting

import (
	"strings"
	"testing"

	"dota-gsi-assistant/internal/gamestate"
)

func TestRender_NilState(t *testing.T) {
	text, hero := Render(nil)
	if text != NoStateText {
		t.Errorf("Expected %q, got %q", NoStateText, text)
	}
	if hero != UnknownHero {
		t.Errorf("Expected %q, got %q", UnknownHero, hero)
	}
}

func TestRender_AllCategoriesEmpty(t *testing.T) {
	state := gamestate.GameState{
		"map":    map[string]any{},
		"player": map[string]any{},
	}

	text, hero := Render(state)
	if text != NoStateText {
		t.Errorf("Expected %q, got %q", NoStateText, text)
	}
	if hero != UnknownHero {
		t.Errorf("Expected %q, got %q", UnknownHero, hero)
	}
}

func TestRender_HeroNameStripped(t *testing.T) {
	state := gamestate.GameState{
		"hero": map[string]any{"name": "npc_dota_hero_ursa"},
	}

	_, hero := Render(state)
	if hero != "ursa" {
		t.Errorf("Expected hero ursa, got %q", hero)
	}
}

func TestRender_MapLine(t *testing.T) {
	state := gamestate.GameState{
		"map": map[string]any{
			"game_state":    "DOTA_GAMERULES_STATE_GAME_IN_PROGRESS",
			"matchid":       "7891",
			"game_time":     754.0,
			"radiant_score": 12.0,
			"dire_score":    9.0,
		},
	}

	text, _ := Render(state)
	if !strings.HasPrefix(text, Header+"\n") {
		t.Errorf("Expected header prefix, got %q", text)
	}
	want := "Game State: DOTA_GAMERULES_STATE_GAME_IN_PROGRESS, Match ID: 7891, Game Time: 754s, Score: 12 - 9"
	if !strings.Contains(text, want) {
		t.Errorf("Expected map line %q in output:\n%s", want, text)
	}
}

func TestRender_BuildingHealthRounded(t *testing.T) {
	state := gamestate.GameState{
		"buildings": map[string]any{
			"radiant": map[string]any{
				"dota_goodguys_tower1_mid": map[string]any{
					"health": 1001.0, "max_health": 1800.0, // 55.6% rounds to 56
				},
			},
		},
	}

	text, _ := Render(state)
	if !strings.Contains(text, "Radiant Buildings: dota_goodguys_tower1_mid(56%)") {
		t.Errorf("Expected rounded building health, got:\n%s", text)
	}
}

func TestRender_BuildingZeroMaxHealth(t *testing.T) {
	state := gamestate.GameState{
		"buildings": map[string]any{
			"dire": map[string]any{
				"dota_badguys_fort": map[string]any{"health": 0.0, "max_health": 0.0},
			},
		},
	}

	// Must not divide by zero.
	text, _ := Render(state)
	if !strings.Contains(text, "dota_badguys_fort(0%)") {
		t.Errorf("Expected 0%% for zero max health, got:\n%s", text)
	}
}

func TestRender_ItemsFilterEmptySlots(t *testing.T) {
	state := gamestate.GameState{
		"items": map[string]any{
			"slot0": map[string]any{"name": "item_empty"},
			"slot1": map[string]any{"name": "empty"},
		},
	}

	text, _ := Render(state)
	if strings.Contains(text, "Items:") {
		t.Errorf("Expected Items section omitted when all slots empty, got:\n%s", text)
	}
}

func TestRender_ItemsChargesAndPrefix(t *testing.T) {
	state := gamestate.GameState{
		"items": map[string]any{
			"slot0": map[string]any{"name": "item_tango", "charges": 3.0},
			"slot1": map[string]any{"name": "item_blink"},
			"slot2": map[string]any{"name": "item_empty"},
		},
	}

	text, _ := Render(state)
	if !strings.Contains(text, "Items: tango(3), blink") {
		t.Errorf("Expected items with charges, prefix stripped, empty filtered, got:\n%s", text)
	}
}

func TestRender_AbilitiesStripHeroPrefix(t *testing.T) {
	state := gamestate.GameState{
		"hero": map[string]any{"name": "npc_dota_hero_ursa"},
		"abilities": map[string]any{
			"ability0": map[string]any{"name": "ursa_earthshock", "level": 4.0, "cooldown": 5.0},
			"ability1": map[string]any{"name": "ursa_overpower", "level": 4.0, "cooldown": 0.0},
		},
	}

	text, _ := Render(state)
	if !strings.Contains(text, "Abilities: earthshock(Lv4, CD:5), overpower(Lv4, CD:0)") {
		t.Errorf("Expected abilities with hero prefix stripped, got:\n%s", text)
	}
}

func TestRender_WardAndPositionNarration(t *testing.T) {
	state := gamestate.GameState{
		"minimap": map[string]any{
			"o0": map[string]any{
				"name": "npc_dota_hero_ursa", "image": "minimap_herocircle_self",
				"xpos": 2900.0, "ypos": 2700.0,
			},
			"o1": map[string]any{
				"name": "npc_dota_hero_lion", "image": "minimap_herocircle",
				"xpos": -1544.0, "ypos": -1500.0,
			},
			"o2": map[string]any{
				"unitname": "npc_dota_observer_wards",
				"xpos":     2800.0, "ypos": 2600.0,
			},
			"o3": map[string]any{
				"unitname": "npc_dota_sentry_wards",
				"xpos":     2800.0, "ypos": 2600.0,
			},
		},
	}

	text, _ := Render(state)

	if !strings.Contains(text, "Ward Summary: Observer(1), Sentry(1)") {
		t.Errorf("Expected ward summary, got:\n%s", text)
	}
	if !strings.Contains(text, "Hero is north of Roshan.") {
		t.Errorf("Expected self hero narration near Roshan, got:\n%s", text)
	}
	if !strings.Contains(text, "Lion is south of Radiant Mid T1.") {
		t.Errorf("Expected ally narration, got:\n%s", text)
	}
	if !strings.Contains(text, "Observer ward west of Roshan.") {
		t.Errorf("Expected observer ward narration, got:\n%s", text)
	}
	if !strings.Contains(text, "Sentry ward west of Roshan.") {
		t.Errorf("Expected sentry ward narration, got:\n%s", text)
	}

	// The summary line precedes the individual sightings.
	if strings.Index(text, "Ward Summary:") > strings.Index(text, "Observer ward") {
		t.Error("Expected ward summary before individual ward lines")
	}
}

func TestRender_MinimapEntriesWithoutPositionSkipped(t *testing.T) {
	state := gamestate.GameState{
		"minimap": map[string]any{
			"o0": map[string]any{"name": "npc_dota_hero_ursa", "image": "minimap_herocircle_self"},
		},
		"player": map[string]any{"name": "P"},
	}

	text, _ := Render(state)
	if strings.Contains(text, "Hero is") {
		t.Errorf("Expected no narration without coordinates, got:\n%s", text)
	}
}

func TestRender_Rosters(t *testing.T) {
	state := gamestate.GameState{
		"allies":  []any{"ursa", "lion"},
		"enemies": []any{"axe"},
	}

	text, _ := Render(state)
	if !strings.Contains(text, "Allies: ursa, lion") {
		t.Errorf("Expected allies roster, got:\n%s", text)
	}
	if !strings.Contains(text, "Enemies: axe") {
		t.Errorf("Expected enemies roster, got:\n%s", text)
	}
}

func TestRender_SectionOrder(t *testing.T) {
	state := gamestate.GameState{
		"map":    map[string]any{"matchid": "7"},
		"player": map[string]any{"name": "P"},
		"hero":   map[string]any{"name": "npc_dota_hero_ursa"},
		"items":  map[string]any{"slot0": map[string]any{"name": "item_blink"}},
		"allies": []any{"ursa"},
	}

	text, _ := Render(state)

	order := []string{"Game State:", "Player:", "Items:", "Hero:", "Allies:"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(text, marker)
		if idx < 0 {
			t.Fatalf("Expected %q in output:\n%s", marker, text)
		}
		if idx < last {
			t.Errorf("Expected %q after previous section, got output:\n%s", marker, text)
		}
		last = idx
	}
}

func TestRender_MalformedCategoryDoesNotAbort(t *testing.T) {
	state := gamestate.GameState{
		"buildings": map[string]any{
			"radiant": "not an object",
		},
		"player": map[string]any{"name": "P", "kills": "also wrong"},
	}

	text, _ := Render(state)
	if !strings.Contains(text, "Player: P") {
		t.Errorf("Expected player section despite malformed data, got:\n%s", text)
	}
	if strings.Contains(text, "Buildings") {
		t.Errorf("Expected malformed buildings omitted, got:\n%s", text)
	}
}

func TestRender_Deterministic(t *testing.T) {
	state := gamestate.GameState{
		"minimap": map[string]any{
			"o2": map[string]any{"unitname": "npc_dota_observer_wards", "xpos": 1.0, "ypos": 1.0},
			"o1": map[string]any{"unitname": "npc_dota_sentry_wards", "xpos": 2.0, "ypos": 2.0},
			"o0": map[string]any{"unitname": "npc_dota_observer_wards", "xpos": 3.0, "ypos": 3.0},
		},
	}

	first, _ := Render(state)
	for i := 0; i < 20; i++ {
		next, _ := Render(state)
		if next != first {
			t.Fatal("Expected identical output across renders of the same state")
		}
	}
}
