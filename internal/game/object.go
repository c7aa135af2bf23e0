package game

import "fmt"

// ItemKind distinguishes items with special behaviour.
type ItemKind int

const (
	ItemPlain ItemKind = iota
	ItemKey
	ItemWatch
)

// FullBattery is the number of ticks a fresh watch keeps running for.
const FullBattery = 0x1000000

// Item is a named object that lives either in a room or in a player's inventory.
type Item struct {
	name        string
	description string
	carryable   bool
	kind        ItemKind

	// Watch state
	reads   TimeOfDay
	battery int64
}

// NewItem creates a plain item.
func NewItem(name, description string, carryable bool) *Item {
	return &Item{
		name:        name,
		description: description,
		carryable:   carryable,
		kind:        ItemPlain,
	}
}

// NewKey creates a carryable key. A key fits exactly the door it is bound to.
func NewKey(name, description string) *Item {
	return &Item{
		name:        name,
		description: description,
		carryable:   true,
		kind:        ItemKey,
	}
}

// NewWatch creates a carryable watch set to the given time with a full battery.
func NewWatch(set TimeOfDay) *Item {
	return &Item{
		name:        "watch",
		description: "A pretty basic, battery-powered watch.",
		carryable:   true,
		kind:        ItemWatch,
		reads:       set,
		battery:     FullBattery,
	}
}

func (i *Item) Name() string { return i.name }
func (i *Item) Kind() ItemKind { return i.kind }
func (i *Item) Carryable() bool { return i.carryable }
func (i *Item) Battery() int64 { return i.battery }
func (i *Item) Reads() TimeOfDay { return i.reads }

// Description returns the item's description. Watches append the time they
// currently show.
func (i *Item) Description() string {
	if i.kind != ItemWatch {
		return i.description
	}
	if i.battery <= 0 {
		return fmt.Sprintf("%s It currently reads %s, but it seems like its battery is dead.", i.description, i.reads)
	}
	return fmt.Sprintf("%s It currently reads %s.", i.description, i.reads)
}

// tick advances a watch by one second while its battery lasts. Other items
// are unaffected. Callers must hold the universe lock.
func (i *Item) tick() {
	if i.kind != ItemWatch || i.battery <= 0 {
		return
	}
	i.battery--
	i.reads = i.reads.Add(1)
}
