package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"
)

// SpaceKind discriminates the two kinds of location node.
type SpaceKind int

const (
	KindRoom SpaceKind = iota
	KindDoor
)

func (k SpaceKind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindDoor:
		return "door"
	default:
		return "unknown"
	}
}

// Space is a node of the world graph. Rooms hold items and players; doors are
// lockable connectors between rooms bound to a single key. The exit graph is
// fixed once the world is loaded.
type Space struct {
	id          string
	kind        SpaceKind
	name        string
	description string
	exits       map[Direction]*Space

	// Room state
	outside         bool
	neverUseArticle bool
	items           *Inventory
	occupants       map[string]*Player

	// Door state
	key    *Item
	locked bool
}

// RoomOption configures a room at construction.
type RoomOption func(*Space)

// Outdoors marks the room as being outside.
func Outdoors(outside bool) RoomOption {
	return func(s *Space) {
		s.outside = outside
	}
}

// WithoutArticle marks a room whose name is never preceded by "the".
func WithoutArticle(never bool) RoomOption {
	return func(s *Space) {
		s.neverUseArticle = never
	}
}

// NewRoom creates an empty room.
func NewRoom(id, name, description string, opts ...RoomOption) *Space {
	s := &Space{
		id:          id,
		kind:        KindRoom,
		name:        name,
		description: description,
		exits:       make(map[Direction]*Space),
		items:       NewInventory(),
		occupants:   make(map[string]*Player),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDoor creates a locked door that only key opens.
func NewDoor(id, name, description string, key *Item) *Space {
	return &Space{
		id:          id,
		kind:        KindDoor,
		name:        name,
		description: description,
		exits:       make(map[Direction]*Space),
		key:         key,
		locked:      true,
	}
}

func (s *Space) Id() string { return s.id }
func (s *Space) Kind() SpaceKind { return s.kind }
func (s *Space) Name() string { return s.name }
func (s *Space) Description() string { return s.description }
func (s *Space) Outside() bool { return s.outside }
func (s *Space) NeverUseArticle() bool { return s.neverUseArticle }
func (s *Space) Key() *Item { return s.key }
func (s *Space) Exit(d Direction) *Space { return s.exits[d] }

// Items returns the room's floor. It is nil for doors.
func (s *Space) Items() *Inventory { return s.items }

// AddExit links d to dest. There can be at most one exit per direction.
func (s *Space) AddExit(d Direction, dest *Space) error {
	if dest == nil {
		return fmt.Errorf("exit %s from %q: destination is nil", d, s.id)
	}
	if _, ok := s.exits[d]; ok {
		return fmt.Errorf("exit %s from %q: %w", d, s.id, ErrExitExists)
	}
	s.exits[d] = dest
	return nil
}

// AddDoor links s to dest through door heading forward. When back is not nil
// the passage can also be walked in reverse by heading back from dest.
func (s *Space) AddDoor(forward Direction, door, dest *Space, back *Direction) error {
	if door == nil || door.kind != KindDoor {
		return ErrNotADoor
	}

	el := errors.NewErrorList()
	el.Add(s.AddExit(forward, door))
	el.Add(door.AddExit(forward, dest))
	if back != nil {
		el.Add(door.AddExit(*back, s))
		el.Add(dest.AddExit(*back, door))
	}
	return el.Err()
}

// Directions returns the directions with an exit in declaration order.
func (s *Space) Directions() []Direction {
	dirs := make([]Direction, 0, len(s.exits))
	for d := range s.exits {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

// Locked reports whether a door is locked. Rooms are never locked.
func (s *Space) Locked() bool {
	return s.kind == KindDoor && s.locked
}

// KeyFits reports whether it is the one key bound to this door.
func (s *Space) KeyFits(it *Item) bool {
	return s.kind == KindDoor && it != nil && s.key == it
}

// Lock locks the door with key.
func (s *Space) Lock(key *Item) error {
	if s.kind != KindDoor {
		return ErrNotADoor
	}
	if s.locked {
		return ErrAlreadyLocked
	}
	if !s.KeyFits(key) {
		return ErrWrongKey
	}
	s.locked = true
	return nil
}

// Unlock unlocks the door with key.
func (s *Space) Unlock(key *Item) error {
	if s.kind != KindDoor {
		return ErrNotADoor
	}
	if !s.locked {
		return ErrNotLocked
	}
	if !s.KeyFits(key) {
		return ErrWrongKey
	}
	s.locked = false
	return nil
}

func (s *Space) addPlayer(p *Player) {
	s.occupants[playerKey(p.name)] = p
}

func (s *Space) removePlayer(p *Player) {
	delete(s.occupants, playerKey(p.name))
}

// findPlayer looks up an occupant by case-insensitive name.
func (s *Space) findPlayer(name string) *Player {
	return s.occupants[playerKey(name)]
}

// sortedOccupants returns the room's players ordered by name.
func (s *Space) sortedOccupants() []*Player {
	out := make([]*Player, 0, len(s.occupants))
	for _, p := range s.occupants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return playerKey(out[i].name) < playerKey(out[j].name) })
	return out
}

// adjacentRooms returns the distinct rooms reachable through one non-door exit,
// excluding s itself.
func (s *Space) adjacentRooms() []*Space {
	seen := map[*Space]bool{s: true}
	var rooms []*Space
	for _, d := range s.Directions() {
		next := s.exits[d]
		switch next.kind {
		case KindRoom:
			if !seen[next] {
				seen[next] = true
				rooms = append(rooms, next)
			}
		case KindDoor:
			// sound does not carry through doors
		}
	}
	return rooms
}

func playerKey(name string) string {
	return strings.ToLower(name)
}
