// Package registry keeps the catalogue of game modes. Modes register
// themselves in init() functions, so shells can list and look them up
// without hardcoding the set.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/slovotetris/internal/gravity"
)

// Mode describes how a game is played.
type Mode struct {
	// ID is the identifier used in config files, CLI flags and score storage.
	ID string
	// Title is the human-readable name.
	Title string
	// Description is a one-line summary for menus and `slovo list`.
	Description string
	// Gravity is the compaction policy used when the config does not pick one.
	Gravity gravity.Policy
	// AutoScan runs the line-scan resolve cycle after every placement.
	AutoScan bool
	// PathScoring scores submitted words with the progressive length table
	// instead of a flat amount per letter.
	PathScoring bool
}

// ModeInfo is the listing view of a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode. Panics if the ID is empty or already taken.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if m.ID == "" {
		panic("registry: mode with empty id")
	}
	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	modes[m.ID] = m
}

// List returns every registered mode, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for id, m := range modes {
		result = append(result, ModeInfo{ID: id, Title: m.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the mode with the given ID.
func Lookup(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
