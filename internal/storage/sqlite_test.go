package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

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
	if err := store.WriteBlob("k", "v"); err != nil {
		t.Fatalf("WriteBlob() failed: %v", err)
	}
	store.Close()

	// Migrations must be idempotent on an existing database.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.ReadBlob("k")
	if err != nil || !ok || v != "v" {
		t.Errorf("ReadBlob() = %q, %v, %v; want v, true, nil", v, ok, err)
	}
}

func TestBlobReadWrite(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.ReadBlob(leaderboard.LocalKey); err != nil || ok {
		t.Fatalf("ReadBlob() on empty store = ok %v, err %v", ok, err)
	}

	if err := store.WriteBlob(leaderboard.LocalKey, "[]"); err != nil {
		t.Fatalf("WriteBlob() failed: %v", err)
	}
	if err := store.WriteBlob(leaderboard.LocalKey, `[{"name":"ABC","score":3}]`); err != nil {
		t.Fatalf("WriteBlob() overwrite failed: %v", err)
	}

	v, ok, err := store.ReadBlob(leaderboard.LocalKey)
	if err != nil || !ok {
		t.Fatalf("ReadBlob() = ok %v, err %v", ok, err)
	}
	if v != `[{"name":"ABC","score":3}]` {
		t.Errorf("ReadBlob() = %s", v)
	}
}

func TestLocalLeaderboardOnStore(t *testing.T) {
	store := openTestStore(t)
	local := leaderboard.NewLocal(store, nil)

	for i, name := range []string{"AAA", "BBB", "CCC"} {
		if _, _, err := local.Submit(leaderboard.Record{Name: name, Score: i}); err != nil {
			t.Fatalf("Submit() failed: %v", err)
		}
	}

	got := leaderboard.NewLocal(store, nil).Load()
	if len(got) != 3 || got[0].Name != "CCC" {
		t.Errorf("Load() = %v, want CCC first", got)
	}
}

func TestPlaysAndStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, score := range []int{10, 30, 20} {
		if _, err := store.RecordPlay(Play{Name: "KNT", Score: score, Passed: score, Ticks: 100, Seed: 7}); err != nil {
			t.Fatalf("RecordPlay() failed: %v", err)
		}
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, want 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, want 20", stats.AvgScore)
	}
	if stats.TotalScore != 60 {
		t.Errorf("TotalScore = %d, want 60", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	recent, err := store.RecentPlays(2)
	if err != nil {
		t.Fatalf("RecentPlays() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].Score != 30 {
		t.Errorf("RecentPlays() = %+v, want newest first", recent)
	}
	if recent[0].Seed != 7 || recent[0].Name != "KNT" {
		t.Errorf("play fields not round-tripped: %+v", recent[0])
	}

	if err := store.ClearPlays(); err != nil {
		t.Fatalf("ClearPlays() failed: %v", err)
	}
	stats, _ = store.Stats()
	if stats.GamesCount != 0 {
		t.Errorf("GamesCount after clear = %d", stats.GamesCount)
	}
}

func TestNamePlay(t *testing.T) {
	store := openTestStore(t)

	id, err := store.RecordPlay(Play{Score: 12, Passed: 12, Ticks: 300, Seed: 9})
	if err != nil {
		t.Fatalf("RecordPlay() failed: %v", err)
	}
	if err := store.NamePlay(id, "ACE"); err != nil {
		t.Fatalf("NamePlay() failed: %v", err)
	}

	recent, err := store.RecentPlays(1)
	if err != nil {
		t.Fatalf("RecentPlays() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Name != "ACE" || recent[0].Score != 12 {
		t.Errorf("RecentPlays() = %+v, want named play", recent)
	}

	if err := store.NamePlay(id+100, "ACE"); err == nil {
		t.Error("NamePlay() on a missing play should fail")
	}
}

func TestConcurrentWrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const sessions = 16
	var wg sync.WaitGroup
	errs := make(chan error, 2*sessions)
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.RecordPlay(Play{Score: i, Passed: i, Seed: int64(i)}); err != nil {
				errs <- fmt.Errorf("RecordPlay(%d): %w", i, err)
			}
			r := leaderboard.Record{Name: "W" + string(rune('A'+i)) + "Z", Score: i}
			if err := store.InsertRecord(ctx, leaderboard.WorldTable, r); err != nil {
				errs <- fmt.Errorf("InsertRecord(%d): %w", i, err)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != sessions {
		t.Errorf("GamesCount = %d, want %d", stats.GamesCount, sessions)
	}
	entries, err := store.TopEntries(ctx, leaderboard.WorldTable, 100)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	if len(entries) != sessions {
		t.Errorf("world entries = %d, want %d", len(entries), sessions)
	}
}

func TestConcurrentLocalSubmit(t *testing.T) {
	store := openTestStore(t)
	board := leaderboard.NewLocal(store, nil)

	const sessions = 8
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := leaderboard.Record{Name: string(rune('A'+i)) + "SS", Score: 50 + i}
			if _, _, err := board.Submit(r); err != nil {
				t.Errorf("Submit(%v) failed: %v", r, err)
			}
		}(i)
	}
	wg.Wait()

	if got := board.Load(); len(got) != sessions {
		t.Errorf("want %d records, got %d", sessions, len(got))
	}
}

func TestWorldTopEntries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, r := range []leaderboard.Record{
		{Name: "AAA", Score: 5},
		{Name: "BBB", Score: 9},
		{Name: "CCC", Score: 5},
	} {
		if err := store.InsertRecord(ctx, leaderboard.WorldTable, r); err != nil {
			t.Fatalf("InsertRecord() failed: %v", err)
		}
	}

	entries, err := store.TopEntries(ctx, leaderboard.WorldTable, 10)
	if err != nil {
		t.Fatalf("TopEntries() failed: %v", err)
	}
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	want := []string{"BBB", "AAA", "CCC"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
	if entries[0].ID == "" || entries[0].ID == entries[1].ID {
		t.Errorf("entries need distinct ids: %q %q", entries[0].ID, entries[1].ID)
	}
}

func TestWorldUnknownTable(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.QueryTopN(ctx, leaderboard.Query{Table: "nope", Limit: 10, SortKey: "score", Descending: true})
	if !errors.Is(err, ErrUnknownTable) {
		t.Errorf("QueryTopN() error = %v, want ErrUnknownTable", err)
	}
	err = store.InsertRecord(ctx, "nope", leaderboard.Record{Name: "ABC", Score: 1})
	if !errors.Is(err, ErrUnknownTable) {
		t.Errorf("InsertRecord() error = %v, want ErrUnknownTable", err)
	}
}

func TestWorldRejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)
	err := store.InsertRecord(context.Background(), leaderboard.WorldTable, leaderboard.Record{Name: "toolong", Score: 1})
	if !errors.Is(err, leaderboard.ErrInvalidName) {
		t.Errorf("InsertRecord() error = %v, want ErrInvalidName", err)
	}
}

func TestRemoteLeaderboardOnStore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	remote := leaderboard.NewRemote(store)

	for i := 0; i < leaderboard.Capacity; i++ {
		if _, err := remote.CheckAndSubmit(ctx, "WLD", 80+i*10); err != nil {
			t.Fatalf("CheckAndSubmit() failed: %v", err)
		}
	}

	adm, err := remote.CheckAndSubmit(ctx, "LOW", 50)
	if err != nil {
		t.Fatalf("CheckAndSubmit() failed: %v", err)
	}
	if adm.Submitted || adm.Threshold != 80 {
		t.Errorf("admission = %+v, want rejected at threshold 80", adm)
	}

	adm, err = remote.CheckAndSubmit(ctx, "TOP", 81)
	if err != nil {
		t.Fatalf("CheckAndSubmit() failed: %v", err)
	}
	if !adm.Submitted {
		t.Error("81 beats the tenth score and should be submitted")
	}

	top, err := remote.FetchTop(ctx, leaderboard.Capacity)
	if err != nil {
		t.Fatalf("FetchTop() failed: %v", err)
	}
	if len(top) != leaderboard.Capacity {
		t.Errorf("FetchTop() len = %d, want %d", len(top), leaderboard.Capacity)
	}
	if top[len(top)-1].Score != 81 {
		t.Errorf("tenth score = %d, want 81", top[len(top)-1].Score)
	}
}
