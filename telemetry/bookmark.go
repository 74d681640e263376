package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkGrazingSurge     BookmarkType = "grazing_surge"
	BookmarkAnimalRecovery   BookmarkType = "animal_recovery"
	BookmarkAnimalExtinction BookmarkType = "animal_extinction"
	BookmarkPlantCrash       BookmarkType = "plant_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable population shifts across windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentAnimalMin    int // minimum animal count since last recovery
	recentPlantPeak    int // peak plant count since last crash
	animalsSeen        bool
	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		recentAnimalMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkGrazingSurge,
			bd.checkAnimalRecovery,
			bd.checkAnimalExtinction,
			bd.checkPlantCrash,
			bd.checkStableEcosystem,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if stats.Animals > 0 {
		bd.animalsSeen = true
	}
	if bd.recentAnimalMin < 0 || stats.Animals < bd.recentAnimalMin {
		bd.recentAnimalMin = stats.Animals
	}
	if stats.Plants > bd.recentPlantPeak {
		bd.recentPlantPeak = stats.Plants
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkGrazingSurge fires when plant kills exceed twice the rolling average.
func (bd *BookmarkDetector) checkGrazingSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.PlantKills
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.PlantKills) > avg*2 && stats.PlantKills >= 3 {
		return &Bookmark{
			Type:        BookmarkGrazingSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plant kills %d are %.1fx average (%.1f)", stats.PlantKills, float64(stats.PlantKills)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkAnimalRecovery(stats WindowStats) *Bookmark {
	if bd.recentAnimalMin <= 0 || bd.recentAnimalMin > 3 {
		return nil
	}

	if stats.Animals >= bd.recentAnimalMin*3 && stats.Animals >= 6 {
		oldMin := bd.recentAnimalMin
		bd.recentAnimalMin = stats.Animals

		return &Bookmark{
			Type:        BookmarkAnimalRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Animal population recovered from %d to %d", oldMin, stats.Animals),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkAnimalExtinction(stats WindowStats) *Bookmark {
	if !bd.animalsSeen || stats.Animals > 0 {
		return nil
	}
	bd.animalsSeen = false
	return &Bookmark{
		Type:        BookmarkAnimalExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Last animal died; %d plants remain", stats.Plants),
	}
}

func (bd *BookmarkDetector) checkPlantCrash(stats WindowStats) *Bookmark {
	if bd.recentPlantPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Plants)/float64(bd.recentPlantPeak)
	if drop > 0.30 && stats.Plants < bd.recentPlantPeak-10 {
		oldPeak := bd.recentPlantPeak
		bd.recentPlantPeak = stats.Plants

		return &Bookmark{
			Type:        BookmarkPlantCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Plants crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Plants),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Plants < 10 || stats.Animals < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}

	recent := history[len(history)-4:]
	if cv2(recent, func(s WindowStats) int { return s.Plants }) < 0.04 &&
		cv2(recent, func(s WindowStats) int { return s.Animals }) < 0.04 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d plants, %d animals over 5+ windows", stats.Plants, stats.Animals),
		}
	}
	return nil
}

// cv2 is the squared coefficient of variation of a population count.
func cv2(history []WindowStats, count func(WindowStats) int) float64 {
	var sum float64
	for _, h := range history {
		sum += float64(count(h))
	}
	mean := sum / float64(len(history))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, h := range history {
		d := float64(count(h)) - mean
		variance += d * d
	}
	variance /= float64(len(history))
	return variance / (mean * mean)
}
