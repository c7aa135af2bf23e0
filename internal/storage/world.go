package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-dungeon/internal/game"
)

// WorldSpec is the declarative description of a world as read from disk.
type WorldSpec struct {
	Spawn     string               `yaml:"spawn"`
	Weather   bool                 `yaml:"weather"`
	Timescale int                  `yaml:"timescale"`
	Rooms     map[string]*RoomSpec `yaml:"rooms"`
	Doors     map[string]*DoorSpec `yaml:"doors"`
}

type RoomSpec struct {
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	Outside         bool              `yaml:"outside"`
	NeverUseArticle bool              `yaml:"never_use_article"`
	Exits           map[string]string `yaml:"exits"`
	Items           []ItemSpec        `yaml:"items"`
}

type ItemSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Carryable   bool   `yaml:"carryable"`
}

type DoorSpec struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	From        string  `yaml:"from"`
	Direction   string  `yaml:"direction"`
	To          string  `yaml:"to"`
	Back        string  `yaml:"back"`
	Locked      bool    `yaml:"locked"`
	Key         KeySpec `yaml:"key"`
}

// KeySpec describes the one key that fits a door and where it starts.
type KeySpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Room        string `yaml:"room"`
}

// Validate checks everything that can be checked without resolving room
// references.
func (w *WorldSpec) Validate() error {
	el := errors.NewErrorList()

	if w.Spawn == "" {
		el.Add(fmt.Errorf("spawn is required"))
	} else if _, ok := w.Rooms[w.Spawn]; !ok {
		el.Add(fmt.Errorf("spawn room %q is not defined", w.Spawn))
	}
	if w.Timescale < 0 {
		el.Add(fmt.Errorf("timescale must be at least 1"))
	}
	if len(w.Rooms) == 0 {
		el.Add(fmt.Errorf("at least one room is required"))
	}

	for _, id := range sortedKeys(w.Rooms) {
		r := w.Rooms[id]
		if r == nil {
			el.Add(fmt.Errorf("room %q: body is empty", id))
			continue
		}
		if err := r.Validate(); err != nil {
			el.Add(fmt.Errorf("room %q: %w", id, err))
		}
	}

	for _, id := range sortedKeys(w.Doors) {
		d := w.Doors[id]
		if _, clash := w.Rooms[id]; clash {
			el.Add(fmt.Errorf("door %q: id is already used by a room", id))
		}
		if d == nil {
			el.Add(fmt.Errorf("door %q: body is empty", id))
			continue
		}
		if err := d.Validate(); err != nil {
			el.Add(fmt.Errorf("door %q: %w", id, err))
		}
	}

	return el.Err()
}

func (r *RoomSpec) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if r.Description == "" {
		el.Add(fmt.Errorf("description is required"))
	}

	seen := map[game.Direction]string{}
	for _, token := range sortedKeys(r.Exits) {
		d, err := game.ResolveDirection(token)
		if err != nil {
			el.Add(fmt.Errorf("exit %q: %w", token, err))
			continue
		}
		if prev, ok := seen[d]; ok {
			el.Add(fmt.Errorf("exits %q and %q both lead %s", prev, token, d))
			continue
		}
		seen[d] = token
		if r.Exits[token] == "" {
			el.Add(fmt.Errorf("exit %q: destination is required", token))
		}
	}

	names := map[string]bool{}
	for i, it := range r.Items {
		if it.Name == "" {
			el.Add(fmt.Errorf("item %d: name is required", i))
			continue
		}
		k := strings.ToLower(it.Name)
		if names[k] {
			el.Add(fmt.Errorf("item %q: %w", it.Name, game.ErrDuplicateItem))
		}
		names[k] = true
	}

	return el.Err()
}

func (d *DoorSpec) Validate() error {
	el := errors.NewErrorList()

	if d.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if d.From == "" {
		el.Add(fmt.Errorf("from is required"))
	}
	if d.To == "" {
		el.Add(fmt.Errorf("to is required"))
	}
	if _, err := game.ResolveDirection(d.Direction); err != nil {
		el.Add(fmt.Errorf("direction %q: %w", d.Direction, err))
	}
	if d.Back != "" {
		if _, err := game.ResolveDirection(d.Back); err != nil {
			el.Add(fmt.Errorf("back %q: %w", d.Back, err))
		}
	}
	if d.Key.Name == "" {
		el.Add(fmt.Errorf("key name is required"))
	}
	if d.Key.Room == "" {
		el.Add(fmt.Errorf("key room is required"))
	}

	return el.Err()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
