package game

import "fmt"

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time with one second resolution that wraps at midnight.
type TimeOfDay struct {
	seconds int
}

// Noon is the time a new universe starts at.
var Noon = TimeOfDay{seconds: 12 * 60 * 60}

// NewTimeOfDay builds a time of day from its parts.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid hour %d", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid minute %d", minute)
	}
	if second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid second %d", second)
	}
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}, nil
}

// Add returns the time n seconds later.
func (t TimeOfDay) Add(n int) TimeOfDay {
	s := (t.seconds + n) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return TimeOfDay{seconds: s}
}

func (t TimeOfDay) Hour() int { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return t.seconds / 60 % 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Vitals are the slowly worsening bodily needs of a player.
type Vitals struct {
	Fatigue int64
	Hunger  int64
	Thirst  int64
}

const (
	MaxFatigue = 0x10000
	MaxHunger  = 0x10000
	MaxThirst  = 0x1000
)

func newVitals() Vitals {
	return Vitals{
		Fatigue: MaxFatigue / 2,
		Hunger:  MaxHunger / 2,
		Thirst:  MaxThirst / 2,
	}
}

func (v *Vitals) tick() {
	v.Fatigue = min(v.Fatigue+1, MaxFatigue)
	v.Hunger = min(v.Hunger+1, MaxHunger)
	v.Thirst = min(v.Thirst+1, MaxThirst)
}
