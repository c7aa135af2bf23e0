package game

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Universe is the single source of truth for all mutable game state.
// One mutex guards the whole aggregate; every method takes it exactly once
// and computes any audience it returns while still holding it.
type Universe struct {
	mu      sync.Mutex
	rooms   map[string]*Space
	players map[string]*Player
	spawn   *Space

	clock     TimeOfDay
	timescale int
	weather   bool
	now       func() time.Time
}

// UniverseOption configures a universe at construction.
type UniverseOption func(*Universe)

// WithTimescale sets how many world seconds pass per real second.
func WithTimescale(n int) UniverseOption {
	return func(u *Universe) {
		if n > 0 {
			u.timescale = n
		}
	}
}

// WithWeather enables the weather simulation flag.
func WithWeather(enabled bool) UniverseOption {
	return func(u *Universe) {
		u.weather = enabled
	}
}

// WithClock sets the starting time of day.
func WithClock(t TimeOfDay) UniverseOption {
	return func(u *Universe) {
		u.clock = t
	}
}

// WithNow overrides the source of last-action timestamps.
func WithNow(now func() time.Time) UniverseOption {
	return func(u *Universe) {
		u.now = now
	}
}

// NewUniverse creates a universe over an already linked room graph.
func NewUniverse(spawn *Space, rooms map[string]*Space, opts ...UniverseOption) *Universe {
	u := &Universe{
		rooms:     rooms,
		players:   make(map[string]*Player),
		spawn:     spawn,
		clock:     Noon,
		timescale: 1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Universe) Spawn() *Space { return u.spawn }
func (u *Universe) Timescale() int { return u.timescale }
func (u *Universe) Weather() bool { return u.weather }
func (u *Universe) Room(id string) *Space { return u.rooms[id] }

// Time returns the current world time of day.
func (u *Universe) Time() TimeOfDay {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.clock
}

// PlayerCount returns the number of registered players.
func (u *Universe) PlayerCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.players)
}

// Register creates a player in the spawn room with output attached. The
// returned audience is the spawn room's occupants before the player joined.
func (u *Universe) Register(name string, out io.Writer) (*Player, Audience, error) {
	if !ValidName(name) {
		return nil, nil, ErrInvalidName
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	k := playerKey(name)
	if _, exists := u.players[k]; exists {
		return nil, nil, ErrPlayerExists
	}

	p := &Player{
		name:       name,
		room:       u.spawn,
		inventory:  NewInventory(),
		out:        out,
		lastAction: u.now(),
		vitals:     newVitals(),
	}
	_ = p.inventory.Add(NewWatch(u.clock))

	audience := outputs(u.spawn, nil)
	u.players[k] = p
	u.spawn.addPlayer(p)
	return p, audience, nil
}

// Retire removes the player from its room and the player table and detaches
// its output. Only the first call for a player reports true; the audience is
// the occupants left behind.
func (u *Universe) Retire(p *Player) (Audience, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, false
	}
	room := p.room
	room.removePlayer(p)
	delete(u.players, playerKey(p.name))
	p.out = nil
	return outputs(room, nil), true
}

// Output returns the player's attached output, or nil once retired.
func (u *Universe) Output(p *Player) io.Writer {
	u.mu.Lock()
	defer u.mu.Unlock()
	return p.out
}

// Touch records player activity.
func (u *Universe) Touch(p *Player) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p.lastAction = u.now()
}

// RequestQuit arms the two-step quit. It reports true when a quit was
// already pending, meaning this request confirms it.
func (u *Universe) RequestQuit(p *Player) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if p.pendingQuit {
		return true
	}
	p.pendingQuit = true
	return false
}

// ClearQuit cancels a pending quit.
func (u *Universe) ClearQuit(p *Player) {
	u.mu.Lock()
	defer u.mu.Unlock()
	p.pendingQuit = false
}

// MovePlayer moves p one step in the direction named by token. Passing a
// locked door takes a fitting key from the inventory; the door stays locked.
func (u *Universe) MovePlayer(p *Player, token string) (*Move, error) {
	d, err := ResolveDirection(token)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	from := p.room
	next := from.exits[d]
	if next == nil {
		return nil, ErrNoSuchExit
	}

	mv := &Move{Direction: d}
	var dest *Space
	switch next.kind {
	case KindRoom:
		dest = next
	case KindDoor:
		if next.locked {
			if fittingKey(p, next) == nil {
				return nil, ErrLockedDoor
			}
			mv.UsedKey = true
		}
		mv.Door = next.name
		dest = next.exits[d]
		if dest == nil || dest.kind != KindRoom {
			return nil, ErrNoSuchExit
		}
	}

	mv.Arrivals = outputs(dest, nil)

	from.removePlayer(p)
	p.room = dest
	dest.addPlayer(p)

	mv.Departures = outputs(from, nil)
	mv.View = roomView(dest, p)
	return mv, nil
}

// Take moves an item from the room floor into p's inventory.
func (u *Universe) Take(p *Player, name string) (*Transfer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	room := p.room
	it := room.items.Get(name)
	if it == nil {
		return nil, ErrNoSuchItem
	}
	if !it.carryable {
		return nil, ErrNotCarryable
	}
	if p.inventory.Contains(it.name) {
		return nil, ErrDuplicateItem
	}

	room.items.Remove(it.name)
	_ = p.inventory.Add(it)
	return &Transfer{Item: it.name, Audience: outputs(room, nil)}, nil
}

// Drop moves an item from p's inventory onto the room floor.
func (u *Universe) Drop(p *Player, name string) (*Transfer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	room := p.room
	it := p.inventory.Get(name)
	if it == nil {
		return nil, ErrNoSuchItem
	}
	if room.items.Contains(it.name) {
		return nil, ErrDuplicateItem
	}

	p.inventory.Remove(it.name)
	_ = room.items.Add(it)
	return &Transfer{Item: it.name, Audience: outputs(room, nil)}, nil
}

// Give hands an item from giver to another player in the same room.
func (u *Universe) Give(giver *Player, itemName, recipient string) (*Gift, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(giver) {
		return nil, ErrPlayerNotFound
	}

	room := giver.room
	it := giver.inventory.Get(itemName)
	if it == nil {
		return nil, ErrNoSuchItem
	}
	r := room.findPlayer(recipient)
	if r == nil {
		return nil, ErrNoSuchPlayer
	}
	if r.inventory.Contains(it.name) {
		return nil, ErrDuplicateItem
	}

	giver.inventory.Remove(it.name)
	_ = r.inventory.Add(it)
	return &Gift{Item: it.name, Recipient: r.name, Audience: outputs(room, nil)}, nil
}

// LockDoor locks the door found in the direction named by token.
func (u *Universe) LockDoor(p *Player, token string) (*DoorChange, error) {
	return u.changeDoor(p, token, (*Space).Lock)
}

// UnlockDoor unlocks the door found in the direction named by token.
func (u *Universe) UnlockDoor(p *Player, token string) (*DoorChange, error) {
	return u.changeDoor(p, token, (*Space).Unlock)
}

func (u *Universe) changeDoor(p *Player, token string, change func(*Space, *Item) error) (*DoorChange, error) {
	d, err := ResolveDirection(token)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	door := p.room.exits[d]
	if door == nil {
		return nil, ErrNoSuchExit
	}
	if door.kind != KindDoor {
		return nil, ErrNotADoor
	}

	key := fittingKey(p, door)
	if key == nil {
		key = anyKey(p)
	}
	if key == nil {
		return nil, ErrNoKey
	}
	if err := change(door, key); err != nil {
		return nil, err
	}
	return &DoorChange{Door: door.name, Direction: d, Audience: outputs(p.room, nil)}, nil
}

// Look describes the room when target is empty or "here", otherwise the named
// item from the room floor or, failing that, from p's inventory.
func (u *Universe) Look(p *Player, target string) (*Sight, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	if target == "" || strings.EqualFold(target, "here") {
		v := roomView(p.room, p)
		return &Sight{Room: &v}, nil
	}
	if it := p.room.items.Get(target); it != nil {
		return &Sight{Item: &ItemView{Name: it.name, Description: it.Description()}}, nil
	}
	if it := p.inventory.Get(target); it != nil {
		return &Sight{Item: &ItemView{Name: it.name, Description: it.Description(), FromInventory: true}}, nil
	}
	return nil, ErrNoSuchItem
}

// Inventory returns the names of the items p carries.
func (u *Universe) Inventory(p *Player) []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return p.inventory.Names()
}

// Holds reports whether p carries an item with the given name.
func (u *Universe) Holds(p *Player, name string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return p.inventory.Contains(name)
}

// Exits lists the ways out of p's room.
func (u *Universe) Exits(p *Player) []ExitView {
	u.mu.Lock()
	defer u.mu.Unlock()
	return exitViews(p.room)
}

// Vitals returns a copy of p's vitals.
func (u *Universe) Vitals(p *Player) Vitals {
	u.mu.Lock()
	defer u.mu.Unlock()
	return p.vitals
}

// Say returns everyone in p's room, p included.
func (u *Universe) Say(p *Player) Audience {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.registered(p) {
		return nil
	}
	return outputs(p.room, nil)
}

// Yell returns everyone in p's room and, separately, everyone in rooms one
// non-door exit away.
func (u *Universe) Yell(p *Player) (near, far Audience) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.registered(p) {
		return nil, nil
	}

	near = outputs(p.room, nil)
	for _, r := range p.room.adjacentRooms() {
		far = append(far, outputs(r, nil)...)
	}
	return near, far
}

// Whisper finds recipient in p's room and splits the room into the two
// participants and everyone else.
func (u *Universe) Whisper(p *Player, recipient string) (*Whisper, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.registered(p) {
		return nil, ErrPlayerNotFound
	}

	r := p.room.findPlayer(recipient)
	if r == nil {
		return nil, ErrNoSuchPlayer
	}

	w := &Whisper{Recipient: r.name}
	for _, o := range p.room.sortedOccupants() {
		if o.out == nil {
			continue
		}
		if o == p || o == r {
			w.Participants = append(w.Participants, o.out)
		} else {
			w.Observers = append(w.Observers, o.out)
		}
	}
	return w, nil
}

// Who lists every registered player ordered by name.
func (u *Universe) Who() []Presence {
	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.now()
	list := make([]Presence, 0, len(u.players))
	for _, p := range u.players {
		list = append(list, Presence{Name: p.name, LastAction: p.lastAction, Idle: now.Sub(p.lastAction)})
	}
	sort.Slice(list, func(i, j int) bool { return playerKey(list[i].Name) < playerKey(list[j].Name) })
	return list
}

// Census returns a consistent snapshot of room id to occupant names.
func (u *Universe) Census() map[string][]string {
	u.mu.Lock()
	defer u.mu.Unlock()

	census := make(map[string][]string, len(u.rooms))
	for id, r := range u.rooms {
		for _, p := range r.sortedOccupants() {
			census[id] = append(census[id], p.name)
		}
	}
	return census
}

// Outputs returns the outputs of every registered player.
func (u *Universe) Outputs() []io.Writer {
	u.mu.Lock()
	defer u.mu.Unlock()

	outs := make([]io.Writer, 0, len(u.players))
	for _, p := range u.players {
		if p.out != nil {
			outs = append(outs, p.out)
		}
	}
	return outs
}

// Tick advances the world by one second. Nothing happens while nobody is
// connected.
func (u *Universe) Tick(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.players) == 0 {
		return nil
	}

	u.clock = u.clock.Add(1)
	for _, p := range u.players {
		p.vitals.tick()
		p.inventory.tick()
	}
	for _, r := range u.rooms {
		if r.items != nil {
			r.items.tick()
		}
	}
	return nil
}

func (u *Universe) registered(p *Player) bool {
	return p != nil && u.players[playerKey(p.name)] == p
}

// outputs snapshots the outputs of a room's occupants, skipping except.
func outputs(room *Space, except *Player) Audience {
	var a Audience
	for _, p := range room.sortedOccupants() {
		if p == except || p.out == nil {
			continue
		}
		a = append(a, p.out)
	}
	return a
}

func fittingKey(p *Player, door *Space) *Item {
	for _, it := range p.inventory.Items() {
		if it.kind == ItemKey && door.KeyFits(it) {
			return it
		}
	}
	return nil
}

func anyKey(p *Player) *Item {
	for _, it := range p.inventory.Items() {
		if it.kind == ItemKey {
			return it
		}
	}
	return nil
}

func exitViews(room *Space) []ExitView {
	var views []ExitView
	for _, d := range room.Directions() {
		next := room.exits[d]
		v := ExitView{Direction: d, Kind: next.kind, Name: next.name}
		switch next.kind {
		case KindRoom:
			v.NeverUseArticle = next.neverUseArticle
		case KindDoor:
			v.Locked = next.locked
		}
		views = append(views, v)
	}
	return views
}

func roomView(room *Space, self *Player) RoomView {
	v := RoomView{
		Name:            room.name,
		Description:     room.description,
		Outside:         room.outside,
		NeverUseArticle: room.neverUseArticle,
		Items:           room.items.Names(),
		Exits:           exitViews(room),
	}
	for _, p := range room.sortedOccupants() {
		if p != self {
			v.Players = append(v.Players, p.name)
		}
	}
	return v
}
