package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_GrazingSurge(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, PlantKills: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, PlantKills: 9})
	if !hasBookmark(bookmarks, BookmarkGrazingSurge) {
		t.Error("expected grazing_surge bookmark")
	}
}

func TestBookmarkDetector_PlantCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, Plants: 100, Animals: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Plants: 50, Animals: 10})
	if !hasBookmark(bookmarks, BookmarkPlantCrash) {
		t.Error("expected plant_crash bookmark")
	}
}

func TestBookmarkDetector_AnimalRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, Plants: 100, Animals: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 300, Plants: 100, Animals: 10})
	if !hasBookmark(bookmarks, BookmarkAnimalRecovery) {
		t.Error("expected animal_recovery bookmark")
	}
}

func TestBookmarkDetector_AnimalExtinctionOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 0, Plants: 40, Animals: 4})

	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 100, Plants: 40}), BookmarkAnimalExtinction) {
		t.Fatal("expected animal_extinction bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 200, Plants: 40}), BookmarkAnimalExtinction) {
		t.Error("extinction should be reported once")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 10; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: i * 100, Plants: 100, Animals: 20})
		got := hasBookmark(bookmarks, BookmarkStableEcosystem)
		if got != (i == 8) {
			t.Errorf("window %d: stable_ecosystem = %v", i, got)
		}
	}
}
