package display

import (
	"fmt"
	"strings"

	"github.com/gertd/go-pluralize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pixil98/go-dungeon/internal/game"
)

var (
	upper  = cases.Upper(language.English)
	plural = pluralize.NewClient()
)

// Heading upper-cases a room name for the top line of a room description.
func Heading(s string) string {
	return upper.String(s)
}

// Definite prefixes name with "the" unless never is set.
func Definite(name string, never bool) string {
	if never {
		return name
	}
	return "the " + name
}

// List joins items as an English list: "a", "a and b", "a, b, and c".
func List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// Count renders n followed by word, pluralised as needed ("1 player", "3 players").
func Count(word string, n int) string {
	return plural.Pluralize(word, n, true)
}

// Room renders a room as seen by a player: heading, description, the other
// players present and the items lying around.
func Room(v game.RoomView, self string) []string {
	lines := []string{
		Heading(Definite(v.Name, v.NeverUseArticle)),
		v.Description,
	}
	if p := Players(v.Players, self); p != "" {
		lines = append(lines, p)
	}
	if len(v.Items) > 0 {
		lines = append(lines, Items(v.Items))
	}
	return lines
}

// Players describes who is in a room. The viewer is listed first, marked "(you)".
func Players(others []string, self string) string {
	names := make([]string, 0, len(others)+1)
	if self != "" {
		names = append(names, self+" (you)")
	}
	names = append(names, others...)

	switch len(names) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Player %s is here.", names[0])
	default:
		return fmt.Sprintf("Players %s are here.", List(names))
	}
}

// Items describes what is lying on the floor.
func Items(items []string) string {
	withArticles := make([]string, len(items))
	for i, it := range items {
		withArticles[i] = Indefinite(it)
	}
	return fmt.Sprintf("There is %s here.", List(withArticles))
}

// Indefinite prefixes name with "a" or "an".
func Indefinite(name string) string {
	if name == "" {
		return name
	}
	switch strings.ToLower(name[:1]) {
	case "a", "e", "i", "o", "u":
		return "an " + name
	default:
		return "a " + name
	}
}

// Exits describes the ways out of a room, one sentence per exit.
func Exits(exits []game.ExitView) string {
	if len(exits) == 0 {
		return "There are no exits."
	}
	parts := make([]string, len(exits))
	for i, e := range exits {
		switch e.Kind {
		case game.KindRoom:
			parts[i] = fmt.Sprintf("%s leads to %s", e.Direction, Definite(e.Name, e.NeverUseArticle))
		case game.KindDoor:
			state := "unlocked"
			if e.Locked {
				state = "locked"
			}
			parts[i] = fmt.Sprintf("%s is %s (%s)", e.Direction, Indefinite(e.Name), state)
		}
	}
	return Capitalize(strings.Join(parts, "; ")) + "."
}

// Inventory describes what a player is carrying.
func Inventory(items []string) string {
	if len(items) == 0 {
		return "You are empty-handed."
	}
	withArticles := make([]string, len(items))
	for i, it := range items {
		withArticles[i] = Indefinite(it)
	}
	return fmt.Sprintf("You are carrying %s (%s).", List(withArticles), Count("item", len(items)))
}
