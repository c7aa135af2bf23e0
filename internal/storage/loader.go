package storage

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/pixil98/go-dungeon/internal/game"
)

// World is a linked room graph ready to be turned into a universe.
type World struct {
	Spawn     *game.Space
	Rooms     map[string]*game.Space
	Timescale int
	Weather   bool
}

// NewUniverse creates a universe over the loaded world.
func (w *World) NewUniverse(opts ...game.UniverseOption) *game.Universe {
	opts = append([]game.UniverseOption{
		game.WithTimescale(w.Timescale),
		game.WithWeather(w.Weather),
	}, opts...)
	return game.NewUniverse(w.Spawn, w.Rooms, opts...)
}

// LoadWorld reads and links the world file at path.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file: %w", err)
	}
	w, err := ParseWorld(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return w, nil
}

// ParseWorld decodes, validates and links a world description.
func ParseWorld(data []byte) (*World, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec WorldSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decoding world: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return spec.Build()
}

// pendingExit is an exit recorded by id during the first pass.
type pendingExit struct {
	from string
	dir  game.Direction
	to   string
}

// pendingDoor is a door passage recorded by id during the first pass.
type pendingDoor struct {
	id   string
	from string
	dir  game.Direction
	to   string
	back *game.Direction
}

// Build links a validated spec. The first pass creates every space and
// records links by id; the second resolves ids to spaces and fails with the
// sorted list of ids that were never defined.
func (w *WorldSpec) Build() (*World, error) {
	rooms := make(map[string]*game.Space, len(w.Rooms))
	doors := make(map[string]*game.Space, len(w.Doors))
	var exits []pendingExit
	var passages []pendingDoor
	keyRooms := map[string]string{}
	keys := map[string]*game.Item{}

	for _, id := range sortedKeys(w.Rooms) {
		r := w.Rooms[id]
		rooms[id] = game.NewRoom(id, r.Name, r.Description,
			game.Outdoors(r.Outside),
			game.WithoutArticle(r.NeverUseArticle),
		)
		for _, token := range sortedKeys(r.Exits) {
			d, _ := game.ResolveDirection(token)
			exits = append(exits, pendingExit{from: id, dir: d, to: r.Exits[token]})
		}
	}

	for _, id := range sortedKeys(w.Doors) {
		d := w.Doors[id]
		key := game.NewKey(d.Key.Name, d.Key.Description)
		keys[id] = key
		keyRooms[id] = d.Key.Room
		doors[id] = game.NewDoor(id, d.Name, d.Description, key)

		p := pendingDoor{id: id, from: d.From, to: d.To}
		p.dir, _ = game.ResolveDirection(d.Direction)
		if d.Back != "" {
			back, _ := game.ResolveDirection(d.Back)
			p.back = &back
		}
		passages = append(passages, p)
	}

	missing := map[string]bool{}
	resolve := func(id string) *game.Space {
		s, ok := rooms[id]
		if !ok {
			missing[id] = true
		}
		return s
	}
	for _, e := range exits {
		resolve(e.to)
	}
	for _, p := range passages {
		resolve(p.from)
		resolve(p.to)
		resolve(keyRooms[p.id])
	}
	if len(missing) > 0 {
		ids := make([]string, 0, len(missing))
		for id := range missing {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return nil, fmt.Errorf("undefined rooms referenced: %s", strings.Join(ids, ", "))
	}

	el := errors.NewErrorList()
	for _, e := range exits {
		el.Add(rooms[e.from].AddExit(e.dir, rooms[e.to]))
	}
	for _, p := range passages {
		door := doors[p.id]
		if err := rooms[p.from].AddDoor(p.dir, door, rooms[p.to], p.back); err != nil {
			el.Add(fmt.Errorf("door %q: %w", p.id, err))
		}
		if !w.Doors[p.id].Locked {
			el.Add(door.Unlock(keys[p.id]))
		}
		if err := rooms[keyRooms[p.id]].Items().Add(keys[p.id]); err != nil {
			el.Add(fmt.Errorf("key for door %q: %w", p.id, err))
		}
	}
	for _, id := range sortedKeys(w.Rooms) {
		for _, it := range w.Rooms[id].Items {
			if err := rooms[id].Items().Add(game.NewItem(it.Name, it.Description, it.Carryable)); err != nil {
				el.Add(fmt.Errorf("room %q: item %q: %w", id, it.Name, err))
			}
		}
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	timescale := w.Timescale
	if timescale == 0 {
		timescale = 1
	}
	return &World{
		Spawn:     rooms[w.Spawn],
		Rooms:     rooms,
		Timescale: timescale,
		Weather:   w.Weather,
	}, nil
}
