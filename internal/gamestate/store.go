package gamestate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dota-gsi-assistant/internal/metrics"
)

// Store is the single authoritative copy of the current match state.
// It serializes all in-process access through one lock and persists
// every merge to a JSON file so a reader in another process can load
// the last durably written snapshot.
//
// The lock is a 1-slot channel rather than a sync.Mutex so acquisition
// can honor the caller's context deadline: a slow merge must fail the
// current request instead of stalling every following tick.
type Store struct {
	path string
	sem  chan struct{}

	state   GameState
	updated bool // this process performed at least one UpdateState

	matchID       string
	heroesTracked bool
	allies        []string
	enemies       []string
}

// NewStore creates a store persisting to path. A pre-existing state
// file seeds the match id and hero tracking so a server restart
// mid-match does not re-track heroes, but the file stays the read
// source for GetState until this process performs its first update.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	s := &Store{
		path: path,
		sem:  make(chan struct{}, 1),
	}

	if state, err := s.loadFile(); err != nil {
		slog.Warn("Could not load existing state file", "path", path, "error", err)
	} else if state != nil {
		s.state = state
		s.seedTracking(state)
		slog.Info("Restored match state", "path", path,
			"match_id", s.matchID, "heroes_tracked", s.heroesTracked)
	}

	return s, nil
}

// UpdateState merges one GSI push into the stored state: match-change
// reset, hero identity tracking, category-wise shallow merge, then
// persistence. The whole sequence runs under the store lock, so a
// concurrent GetState observes either the pre- or post-merge snapshot,
// never an interleaving.
//
// A persistence failure is logged and counted but does not roll back
// the in-memory merge: the feed re-sends the full picture every tick,
// so availability wins over durability here.
func (s *Store) UpdateState(ctx context.Context, partial Update) error {
	if err := s.lock(ctx); err != nil {
		return fmt.Errorf("acquiring state lock: %w", err)
	}
	defer s.unlock()

	if s.state == nil {
		s.state = GameState{}
	}

	if matchID, ok := matchIDOf(partial); ok && matchID != s.matchID {
		slog.Info("Match ID changed, resetting hero tracking",
			"old_match_id", s.matchID, "new_match_id", matchID)
		s.matchID = matchID
		s.heroesTracked = false
		s.allies = nil
		s.enemies = nil
		metrics.HeroesTracked.Set(0)
	}

	if !s.heroesTracked {
		allies, enemies, complete := TrackHeroes(partial["minimap"], s.allies, s.enemies)
		if len(enemies) > len(s.enemies) {
			slog.Info("New enemy hero detected", "match_id", s.matchID,
				"allies", allies, "enemies", enemies)
		}
		s.allies, s.enemies = allies, enemies
		metrics.HeroesTracked.Set(float64(len(allies) + len(enemies)))
		if complete {
			s.heroesTracked = true
			slog.Info("All heroes identified, tracking stopped",
				"match_id", s.matchID, "allies", allies, "enemies", enemies)
		}
	}

	// Shallow merge per category: keys present in the push overwrite,
	// keys absent are left untouched. Keys never disappear, even when a
	// later tick drops them (a sold item keeps its last seen slot) —
	// the feed has always behaved this way and readers rely on it.
	for category, data := range partial {
		stored, ok := s.state[category].(map[string]any)
		if !ok {
			stored = map[string]any{}
			s.state[category] = stored
		}
		for key, value := range data {
			stored[key] = value
		}
	}
	for _, category := range Categories {
		if _, ok := s.state[category]; !ok {
			s.state[category] = map[string]any{}
		}
	}

	s.state["allies"] = append([]string(nil), s.allies...)
	s.state["enemies"] = append([]string(nil), s.enemies...)
	s.updated = true

	if err := s.persist(); err != nil {
		metrics.PersistFailures.Inc()
		slog.Error("Failed to persist state", "path", s.path, "error", err)
	}

	return nil
}

// GetState returns the current snapshot. While this process has not
// performed an update itself, the persisted file is re-read on every
// call so a pure reader process sees whatever the writer last stored.
// It returns nil when neither memory nor disk has any state.
func (s *Store) GetState(ctx context.Context) (GameState, error) {
	if err := s.lock(ctx); err != nil {
		return nil, fmt.Errorf("acquiring state lock: %w", err)
	}
	defer s.unlock()

	if s.updated && len(s.state) > 0 {
		return s.state.Clone(), nil
	}

	state, err := s.loadFile()
	if err != nil {
		return nil, fmt.Errorf("loading state file: %w", err)
	}
	return state, nil
}

// MatchID returns the match id of the most recent update.
func (s *Store) MatchID() string {
	if err := s.lock(context.Background()); err != nil {
		return ""
	}
	defer s.unlock()
	return s.matchID
}

func (s *Store) lock(ctx context.Context) error {
	// An expired context always fails, even when the lock is free.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() {
	<-s.sem
}

func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

func (s *Store) loadFile() (GameState, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decoding state file: %w", err)
	}
	if len(state) == 0 {
		return nil, nil
	}
	return state, nil
}

// seedTracking restores match id and hero rosters from a loaded state
// file, re-freezing tracking when the rosters were already complete.
func (s *Store) seedTracking(state GameState) {
	if mapData := state.Category("map"); mapData != nil {
		if id, ok := asString(mapData["matchid"]); ok {
			s.matchID = id
		}
	}
	s.allies = state.Heroes("allies")
	s.enemies = state.Heroes("enemies")
	s.heroesTracked = len(s.allies)+len(s.enemies) == heroesPerMatch
}

// matchIDOf extracts map.matchid from a push when present. The feed
// sends it as a string, but a numeric value is normalized too.
func matchIDOf(partial Update) (string, bool) {
	mapData, ok := partial["map"]
	if !ok {
		return "", false
	}
	raw, ok := mapData["matchid"]
	if !ok {
		return "", false
	}
	return asString(raw)
}

func asString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return fmt.Sprintf("%.0f", value), true
	case json.Number:
		return value.String(), true
	}
	return "", false
}
