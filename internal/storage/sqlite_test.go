package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created along with its directory
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("blocks", 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("blocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("got high score %d, expected 120", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("blocks", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("snake", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, expected 3", len(scores))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, e := range expected {
		if scores[i].Score != e {
			t.Errorf("scores[%d]: got %d, expected %d", i, scores[i].Score, e)
		}
		if scores[i].Mode != "blocks" {
			t.Errorf("scores[%d]: got mode %q, expected blocks", i, scores[i].Mode)
		}
	}

	snake, err := store.TopScores("snake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(snake) != 1 || snake[0].Score != 500 {
		t.Errorf("got %+v, expected one snake score of 500", snake)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveScore("blocks", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blocks", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("got %d scores, expected 5", len(scores))
	}
	if scores[0].Score != 140 {
		t.Errorf("got top score %d, expected 140", scores[0].Score)
	}

	// Non-positive limit falls back to 10
	scores, err = store.TopScores("blocks", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("got %d scores, expected 10", len(scores))
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("snake")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("got %d, expected 0 for a mode with no games", high)
	}
}

func TestStoreSaveGameWithWords(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame(GameRecord{
		Mode:  "snake",
		Score: 42,
		Seed:  7,
		Words: []FoundWord{
			{Word: "дом", Points: 3, Direction: "path"},
			{Word: "жёлудь", Points: 10, Direction: "path"},
			{Word: "кот", Points: 3, Direction: "path"},
		},
	})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero game id")
	}

	scores, err := store.TopScores("snake", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	got := scores[0]
	if got.Words != 3 || got.BestWord != "жёлудь" || got.Seed != 7 {
		t.Errorf("got %+v, expected 3 words, best жёлудь, seed 7", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestStoreLongestWords(t *testing.T) {
	store := openTestStore(t)

	games := []GameRecord{
		{Mode: "blocks", Score: 60, Words: []FoundWord{
			{Word: "дом", Points: 30, Direction: "horizontal"},
			{Word: "книга", Points: 50, Direction: "vertical"},
		}},
		{Mode: "blocks", Score: 40, Words: []FoundWord{
			{Word: "дом", Points: 30, Direction: "vertical"},
			{Word: "мост", Points: 40, Direction: "horizontal"},
		}},
		{Mode: "snake", Score: 99, Words: []FoundWord{
			{Word: "электричка", Points: 22, Direction: "path"},
		}},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	words, err := store.LongestWords("blocks", 10)
	if err != nil {
		t.Fatalf("LongestWords() failed: %v", err)
	}

	expected := []string{"книга", "мост", "дом"}
	if len(words) != len(expected) {
		t.Fatalf("got %d words, expected %d", len(words), len(expected))
	}
	for i, w := range expected {
		if words[i].Word != w {
			t.Errorf("words[%d]: got %q, expected %q", i, words[i].Word, w)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveGame(GameRecord{Mode: "blocks", Score: 100, Words: []FoundWord{{Word: "дом", Points: 30, Direction: "horizontal"}}}); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := store.SaveScore("snake", 300); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	if err := store.ClearScores("blocks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blocks", 10)
	if len(scores) != 0 {
		t.Errorf("got %d blocks scores after clear, expected 0", len(scores))
	}
	words, _ := store.LongestWords("blocks", 10)
	if len(words) != 0 {
		t.Errorf("got %d blocks words after clear, expected 0", len(words))
	}

	// Other modes are untouched
	scores, _ = store.TopScores("snake", 10)
	if len(scores) != 1 {
		t.Errorf("got %d snake scores, expected 1", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []GameRecord{
		{Mode: "blocks", Score: 100, Words: []FoundWord{{Word: "дом", Points: 30, Direction: "horizontal"}}},
		{Mode: "blocks", Score: 300},
		{Mode: "snake", Score: 50},
	} {
		if _, err := store.SaveGame(rec); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	stats, err := store.Stats("blocks")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 || stats.TotalWords != 1 {
		t.Errorf("got %+v, expected 2 games, high 300, avg 200, 1 word", stats)
	}

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("got %+v, expected empty stats", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got stats for %d modes, expected 2", len(all))
	}
	if all["snake"] == nil || all["snake"].HighScore != 50 {
		t.Errorf("got snake stats %+v, expected high score 50", all["snake"])
	}
}
