package game

import "strings"

// Direction is one of the ten fixed compass and vertical headings.
type Direction int

const (
	North Direction = iota
	Northeast
	East
	Southeast
	South
	Southwest
	West
	Northwest
	Up
	Down
)

type directionNames struct {
	name          string
	abbreviations []string
}

var directions = [...]directionNames{
	North:     {name: "north", abbreviations: []string{"n"}},
	Northeast: {name: "northeast", abbreviations: []string{"ne"}},
	East:      {name: "east", abbreviations: []string{"e"}},
	Southeast: {name: "southeast", abbreviations: []string{"se"}},
	South:     {name: "south", abbreviations: []string{"s"}},
	Southwest: {name: "southwest", abbreviations: []string{"sw"}},
	West:      {name: "west", abbreviations: []string{"w"}},
	Northwest: {name: "northwest", abbreviations: []string{"nw"}},
	Up:        {name: "up"},
	Down:      {name: "down"},
}

// Directions returns every direction in declaration order.
func Directions() []Direction {
	all := make([]Direction, len(directions))
	for i := range directions {
		all[i] = Direction(i)
	}
	return all
}

// String returns the canonical name of the direction.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directions) {
		return "unknown"
	}
	return directions[d].name
}

// Abbreviations returns the accepted short forms of the direction.
func (d Direction) Abbreviations() []string {
	if d < 0 || int(d) >= len(directions) {
		return nil
	}
	return directions[d].abbreviations
}

// Matches reports whether token names this direction, ignoring case.
func (d Direction) Matches(token string) bool {
	if strings.EqualFold(token, d.String()) {
		return true
	}
	for _, abbr := range d.Abbreviations() {
		if strings.EqualFold(token, abbr) {
			return true
		}
	}
	return false
}

// ResolveDirection maps a player-supplied token onto a Direction.
func ResolveDirection(token string) (Direction, error) {
	for _, d := range Directions() {
		if d.Matches(token) {
			return d, nil
		}
	}
	return 0, ErrNoSuchDirection
}
