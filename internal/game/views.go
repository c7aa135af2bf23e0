package game

import (
	"io"
	"time"
)

// Audience is a snapshot of output channels taken under the universe lock.
type Audience []io.Writer

// ExitView describes one way out of a room.
type ExitView struct {
	Direction       Direction
	Kind            SpaceKind
	Name            string
	NeverUseArticle bool
	Locked          bool
}

// RoomView is what a player sees when looking around a room.
type RoomView struct {
	Name            string
	Description     string
	Outside         bool
	NeverUseArticle bool
	// Players lists the other occupants.
	Players []string
	Items   []string
	Exits   []ExitView
}

// ItemView is what a player sees when looking at an item.
type ItemView struct {
	Name          string
	Description   string
	FromInventory bool
}

// Sight is the result of a look: exactly one of Room and Item is set.
type Sight struct {
	Room *RoomView
	Item *ItemView
}

// Move is the outcome of a successful move.
type Move struct {
	Direction Direction
	// Door is the name of the door passed through, if any.
	Door    string
	UsedKey bool
	// Arrivals are the destination occupants before the mover joined.
	Arrivals Audience
	// Departures are the origin occupants after the mover left.
	Departures Audience
	View       RoomView
}

// Transfer is the outcome of a take or drop.
type Transfer struct {
	Item     string
	Audience Audience
}

// Gift is the outcome of a give.
type Gift struct {
	Item      string
	Recipient string
	Audience  Audience
}

// Whisper splits a room between those who hear the words and those who only
// see lips moving.
type Whisper struct {
	Recipient    string
	Participants Audience
	Observers    Audience
}

// DoorChange is the outcome of locking or unlocking a door.
type DoorChange struct {
	Door      string
	Direction Direction
	Audience  Audience
}

// Presence is one row of the who list.
type Presence struct {
	Name       string
	LastAction time.Time
	// Idle is how long ago LastAction was by the universe's clock.
	Idle time.Duration
}
