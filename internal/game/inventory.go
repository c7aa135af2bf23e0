package game

import (
	"sort"
	"strings"
)

// Inventory holds items keyed by their case-insensitive name. It backs both
// room floors and player inventories and is only touched under the universe lock.
type Inventory struct {
	items map[string]*Item
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		items: make(map[string]*Item),
	}
}

func itemKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add inserts an item. It fails if an item with the same name is already held.
func (inv *Inventory) Add(it *Item) error {
	k := itemKey(it.Name())
	if _, ok := inv.items[k]; ok {
		return ErrDuplicateItem
	}
	inv.items[k] = it
	return nil
}

// Remove removes an item by name.
// Returns the removed item, or nil if not found.
func (inv *Inventory) Remove(name string) *Item {
	k := itemKey(name)
	if it, ok := inv.items[k]; ok {
		delete(inv.items, k)
		return it
	}
	return nil
}

// Get returns an item by name, or nil if not found.
func (inv *Inventory) Get(name string) *Item {
	return inv.items[itemKey(name)]
}

// Contains checks if an item with the given name is held.
func (inv *Inventory) Contains(name string) bool {
	_, ok := inv.items[itemKey(name)]
	return ok
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Items returns the held items sorted by name.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, 0, len(inv.items))
	for _, it := range inv.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		return itemKey(out[i].Name()) < itemKey(out[j].Name())
	})
	return out
}

// Names returns the names of the held items in sorted order.
func (inv *Inventory) Names() []string {
	items := inv.Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name()
	}
	return names
}

func (inv *Inventory) tick() {
	for _, it := range inv.items {
		it.tick()
	}
}
