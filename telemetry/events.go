// Package telemetry provides population tracking, bookmarks and CSV output for runs.
package telemetry

import "github.com/pthm-cable/tilelife/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventAttack
	EventKill
	EventDrown
	EventMove
)

func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventAttack:
		return "attack"
	case EventKill:
		return "kill"
	case EventDrown:
		return "drown"
	case EventMove:
		return "move"
	default:
		return "unknown"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint64
	Kind     components.Kind

	// Optional fields depending on event type
	TargetID uint64       // victim for attack/kill, parent for birth
	Amount   float64      // damage dealt (attack) or water damage (drown)
	Row      *OrganismRow // finalized stats, death events only
}

// Recorder receives events from the simulation as they happen.
type Recorder interface {
	Record(Event)
}

// Discard is a Recorder that drops every event.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Event) {}

// NewBirthEvent creates a birth event. Founders carry parent id 0.
func NewBirthEvent(tick int, childID, parentID uint64, kind components.Kind) Event {
	return Event{
		Type:     EventBirth,
		Tick:     tick,
		EntityID: childID,
		Kind:     kind,
		TargetID: parentID,
	}
}

// NewDeathEvent creates a death event. row may be nil when death rows are disabled.
func NewDeathEvent(tick int, entityID uint64, kind components.Kind, row *OrganismRow) Event {
	return Event{
		Type:     EventDeath,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
		Row:      row,
	}
}

// NewAttackEvent creates an attack event.
func NewAttackEvent(tick int, attackerID, targetID uint64, damage float64) Event {
	return Event{
		Type:     EventAttack,
		Tick:     tick,
		EntityID: attackerID,
		Kind:     components.KindAnimal,
		TargetID: targetID,
		Amount:   damage,
	}
}

// NewKillEvent creates a kill event. kind is the victim's kind.
func NewKillEvent(tick int, attackerID, targetID uint64, kind components.Kind) Event {
	return Event{
		Type:     EventKill,
		Tick:     tick,
		EntityID: attackerID,
		Kind:     kind,
		TargetID: targetID,
	}
}

// NewDrownEvent creates a drowning event.
func NewDrownEvent(tick int, entityID uint64, damage float64) Event {
	return Event{
		Type:     EventDrown,
		Tick:     tick,
		EntityID: entityID,
		Kind:     components.KindAnimal,
		Amount:   damage,
	}
}

// NewMoveEvent creates a movement event.
func NewMoveEvent(tick int, entityID uint64) Event {
	return Event{
		Type:     EventMove,
		Tick:     tick,
		EntityID: entityID,
		Kind:     components.KindAnimal,
	}
}
