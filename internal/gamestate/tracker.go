package gamestate

import "strings"

const (
	heroNamePrefix = "npc_dota_hero_"
	allyMarker     = "herocircle" // also matches herocircle_self
	enemyMarker    = "minimap_enemyicon"

	// heroesPerMatch is the point at which identity tracking freezes
	// until the match id changes.
	heroesPerMatch = 10
)

// TrackHeroes scans one tick of minimap data and folds any hero
// sightings into the ally/enemy rosters. It is pure: the inputs are not
// mutated, the updated rosters are returned. Re-adding a known hero is
// a no-op, so calling it every tick is safe. complete reports whether
// all heroes of the match are now identified.
func TrackHeroes(minimap map[string]any, allies, enemies []string) (updatedAllies, updatedEnemies []string, complete bool) {
	updatedAllies = append([]string(nil), allies...)
	updatedEnemies = append([]string(nil), enemies...)

	for _, entry := range minimap {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["name"].(string)
		if name == "" {
			continue
		}
		hero := strings.TrimPrefix(name, heroNamePrefix)
		image, _ := obj["image"].(string)

		switch {
		case strings.Contains(image, allyMarker):
			updatedAllies = appendHero(updatedAllies, hero)
		case image == enemyMarker:
			updatedEnemies = appendHero(updatedEnemies, hero)
		}
		// Buildings, creeps, runes and wards carry other images and
		// are ignored here.
	}

	complete = len(updatedAllies)+len(updatedEnemies) == heroesPerMatch
	return updatedAllies, updatedEnemies, complete
}

func appendHero(heroes []string, hero string) []string {
	for _, h := range heroes {
		if h == hero {
			return heroes
		}
	}
	return append(heroes, hero)
}
