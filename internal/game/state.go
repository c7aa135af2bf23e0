package game

import (
	"io"
	"regexp"
	"time"
)

// MaxNameLength bounds player names.
const MaxNameLength = 24

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidName reports whether name can be used to register a player.
func ValidName(name string) bool {
	return len(name) <= MaxNameLength && validName.MatchString(name)
}

// Player holds all mutable state for a connected player. Everything except
// the name is guarded by the owning universe's lock.
type Player struct {
	name string

	room        *Space
	inventory   *Inventory
	out         io.Writer
	lastAction  time.Time
	pendingQuit bool
	vitals      Vitals
}

// Name returns the player's name. It never changes.
func (p *Player) Name() string {
	return p.name
}
