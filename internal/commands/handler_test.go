package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-dungeon/internal/game"
	"github.com/pixil98/go-dungeon/internal/narrator"
)

type published struct {
	targets []io.Writer
	text    string
}

type recordingPublisher struct {
	events []published
}

func (p *recordingPublisher) Narrate(targets []io.Writer, text string) {
	if len(targets) == 0 {
		return
	}
	p.events = append(p.events, published{targets: targets, text: text})
}

func (p *recordingPublisher) Notify(target io.Writer, text string) {
	if target == nil {
		return
	}
	p.events = append(p.events, published{targets: []io.Writer{target}, text: text})
}

// heard returns every line delivered to w, in order.
func (p *recordingPublisher) heard(w io.Writer) []string {
	var lines []string
	for _, e := range p.events {
		for _, t := range e.targets {
			if t == w {
				lines = append(lines, e.text)
				break
			}
		}
	}
	return lines
}

func (p *recordingPublisher) reset() {
	p.events = nil
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveCommand(action, outcome string) {
	o.outcomes = append(o.outcomes, action+":"+outcome)
}

type fixture struct {
	world   *game.Universe
	pub     *recordingPublisher
	handler *Handler
	obs     *recordingObserver
}

// newFixture builds:
//
//	lobby -north-> hall -east-> [iron door] -east-> vault
//
// with a flashlight, a statue and the brass key lying in the lobby.
func newFixture(t *testing.T, opts ...game.UniverseOption) *fixture {
	t.Helper()

	lobby := game.NewRoom("lobby", "lobby", "A dusty lobby.")
	hall := game.NewRoom("hall", "hall", "A long hall.")
	vault := game.NewRoom("vault", "vault", "A cold vault.")
	key := game.NewKey("brass key", "A small brass key.")
	door := game.NewDoor("vault-door", "iron door", "A heavy iron door.", key)

	back := game.West
	for _, err := range []error{
		lobby.AddExit(game.North, hall),
		hall.AddExit(game.South, lobby),
		hall.AddDoor(game.East, door, vault, &back),
		lobby.Items().Add(game.NewItem("flashlight", "A heavy flashlight.", true)),
		lobby.Items().Add(game.NewItem("statue", "A marble statue.", false)),
		lobby.Items().Add(key),
	} {
		if err != nil {
			t.Fatalf("building world: %v", err)
		}
	}

	world := game.NewUniverse(lobby, map[string]*game.Space{"lobby": lobby, "hall": hall, "vault": vault}, opts...)
	n, err := narrator.NewTemplateNarrator(nil, narrator.WithPicker(func(int) int { return 0 }))
	if err != nil {
		t.Fatalf("building narrator: %v", err)
	}

	f := &fixture{world: world, pub: &recordingPublisher{}, obs: &recordingObserver{}}
	f.handler = NewHandler(world, f.pub, n, WithObserver(f.obs))
	return f
}

func (f *fixture) join(t *testing.T, name string) (*game.Player, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, _, err := f.world.Register(name, &buf)
	if err != nil {
		t.Fatalf("registering %s: %v", name, err)
	}
	return p, &buf
}

func (f *fixture) exec(t *testing.T, p *game.Player, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if err := f.handler.Exec(context.Background(), p, line); err != nil {
			t.Fatalf("exec %q: %v", line, err)
		}
	}
}

func TestHandler_Unknown(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")

	f.exec(t, ann, "xyzzy plugh")

	testutil.AssertEqual(t, "message", strings.Join(f.pub.heard(annOut), "|"),
		`Unsure what is meant by "xyzzy". Try "help" to get a list of valid actions.`)
	testutil.AssertEqual(t, "outcome", strings.Join(f.obs.outcomes, ","), "unknown:user_error")
}

func TestHandler_Blank(t *testing.T) {
	f := newFixture(t)
	ann, _ := f.join(t, "Ann")

	f.exec(t, ann, "   ")

	testutil.AssertEqual(t, "events", len(f.pub.events), 0)
	testutil.AssertEqual(t, "outcomes", len(f.obs.outcomes), 0)
}

func TestHandler_Take(t *testing.T) {
	tests := map[string]struct {
		line    string
		expAnn  string
		expBo   string
		expHeld string
	}{
		"take with article": {
			line:    "take the flashlight",
			expAnn:  "Ann takes the flashlight.",
			expBo:   "Ann takes the flashlight.",
			expHeld: "flashlight",
		},
		"synonym any case": {
			line:    "GET Flashlight",
			expAnn:  "Ann takes the flashlight.",
			expBo:   "Ann takes the flashlight.",
			expHeld: "flashlight",
		},
		"no such item": {
			line:   "take lamp",
			expAnn: `There is no item "lamp" in the room.`,
		},
		"not carryable": {
			line:   "take statue",
			expAnn: "The statue cannot be picked up.",
		},
		"nothing named": {
			line:   "take",
			expAnn: "Specify an item to take.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")
			_, boOut := f.join(t, "Bo")

			f.exec(t, ann, tt.line)

			testutil.AssertEqual(t, "ann heard", strings.Join(f.pub.heard(annOut), "|"), tt.expAnn)
			testutil.AssertEqual(t, "bo heard", strings.Join(f.pub.heard(boOut), "|"), tt.expBo)
			if tt.expHeld != "" {
				testutil.AssertEqual(t, "held", f.world.Holds(ann, tt.expHeld), true)
			}
		})
	}
}

func TestHandler_TakeThenDrop(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")

	f.exec(t, ann, "take flashlight", "drop the flashlight", "drop flashlight")

	testutil.AssertEqual(t, "heard", strings.Join(f.pub.heard(annOut), "|"),
		`Ann takes the flashlight.|Ann drops the flashlight.|You do not have an item known as "flashlight".`)
	testutil.AssertEqual(t, "held", f.world.Holds(ann, "flashlight"), false)
}

func TestHandler_Move(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")
	_, boOut := f.join(t, "Bo")
	cy, cyOut := f.join(t, "Cy")
	f.exec(t, cy, "north")
	f.pub.reset()

	f.exec(t, ann, "n")

	testutil.AssertEqual(t, "bo heard", strings.Join(f.pub.heard(boOut), "|"), "Ann leaves north.")
	testutil.AssertEqual(t, "cy heard", strings.Join(f.pub.heard(cyOut), "|"), "Ann arrives.")
	testutil.AssertEqual(t, "ann heard", strings.Join(f.pub.heard(annOut), "|"),
		"THE HALL\nA long hall.\nPlayers Ann (you) and Cy are here.")
}

func TestHandler_MoveErrors(t *testing.T) {
	tests := map[string]struct {
		line   string
		expMsg string
	}{
		"no direction": {
			line:   "go",
			expMsg: "Specify a direction in which to move.",
		},
		"unknown direction": {
			line:   "go sideways",
			expMsg: `Unsure which direction is meant by "sideways". The following directions are recognized: north, northeast, east, southeast, south, southwest, west, northwest, up, and down.`,
		},
		"no exit": {
			line:   "west",
			expMsg: `That's not an exit. Try "exits" for a list of ways out.`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")

			f.exec(t, ann, tt.line)

			testutil.AssertEqual(t, "message", strings.Join(f.pub.heard(annOut), "|"), tt.expMsg)
		})
	}
}

func TestHandler_LockedDoor(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")
	f.exec(t, ann, "north")
	f.pub.reset()

	f.exec(t, ann, "east")
	testutil.AssertEqual(t, "without key", strings.Join(f.pub.heard(annOut), "|"),
		"The door is locked, and you don't have the key.")

	f.exec(t, ann, "s", "take brass key", "n")
	f.pub.reset()

	f.exec(t, ann, "east")
	lines := f.pub.heard(annOut)
	testutil.AssertEqual(t, "lines", len(lines), 2)
	testutil.AssertEqual(t, "key notice", lines[0], "Your key unlocks the door. You lock it behind you.")
	testutil.AssertEqual(t, "arrived", strings.HasPrefix(lines[1], "THE VAULT"), true)
}

func TestHandler_Doors(t *testing.T) {
	tests := map[string]struct {
		takeKey bool
		lines   []string
		expLast string
	}{
		"no key": {
			lines:   []string{"unlock east"},
			expLast: "You don't have a key.",
		},
		"unlock": {
			takeKey: true,
			lines:   []string{"unlock east"},
			expLast: "Ann unlocks the iron door.",
		},
		"unlock twice": {
			takeKey: true,
			lines:   []string{"unlock east", "unlock east"},
			expLast: "The door isn't locked.",
		},
		"already locked": {
			takeKey: true,
			lines:   []string{"lock east"},
			expLast: "The door is already locked.",
		},
		"not a door": {
			takeKey: true,
			lines:   []string{"lock south"},
			expLast: "There is no door that way.",
		},
		"no direction": {
			lines:   []string{"lock"},
			expLast: "Specify the direction of the door to lock.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")
			if tt.takeKey {
				f.exec(t, ann, "take brass key")
			}
			f.exec(t, ann, "north")
			f.exec(t, ann, tt.lines...)

			lines := f.pub.heard(annOut)
			testutil.AssertEqual(t, "last", lines[len(lines)-1], tt.expLast)
		})
	}
}

func TestHandler_Give(t *testing.T) {
	tests := map[string]struct {
		line   string
		expAnn string
		expBo  string
		expCy  string
	}{
		"give": {
			line:   "give flashlight to Bo",
			expAnn: "Ann gives the flashlight to Bo.",
			expBo:  "Ann gives the flashlight to Bo.",
			expCy:  "Ann gives the flashlight to Bo.",
		},
		"no recipient": {
			line:   "give flashlight",
			expAnn: "You must specify a recipient.",
		},
		"to self": {
			line:   "give flashlight to ann",
			expAnn: "You can't give something to yourself.",
		},
		"absent recipient": {
			line:   "give flashlight to Dee",
			expAnn: `There is no such player "Dee" in this room.`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")
			bo, boOut := f.join(t, "Bo")
			_, cyOut := f.join(t, "Cy")
			f.exec(t, ann, "take flashlight")
			f.pub.reset()

			f.exec(t, ann, tt.line)

			testutil.AssertEqual(t, "ann heard", strings.Join(f.pub.heard(annOut), "|"), tt.expAnn)
			testutil.AssertEqual(t, "bo heard", strings.Join(f.pub.heard(boOut), "|"), tt.expBo)
			testutil.AssertEqual(t, "cy heard", strings.Join(f.pub.heard(cyOut), "|"), tt.expCy)
			testutil.AssertEqual(t, "bo holds", f.world.Holds(bo, "flashlight"), tt.expBo != "")
		})
	}
}

func TestHandler_Speech(t *testing.T) {
	tests := map[string]struct {
		line   string
		expAnn string
		expBo  string
		expCy  string
		expDee string
	}{
		"say": {
			line:   `say "hello there"`,
			expAnn: `Ann says, "hello there"`,
			expBo:  `Ann says, "hello there"`,
			expCy:  `Ann says, "hello there"`,
		},
		"say shorthand": {
			line:   "'hello there",
			expAnn: `Ann says, "hello there"`,
			expBo:  `Ann says, "hello there"`,
			expCy:  `Ann says, "hello there"`,
		},
		"say shorthand spaced": {
			line:   "' hello",
			expAnn: `Ann says, "hello"`,
			expBo:  `Ann says, "hello"`,
			expCy:  `Ann says, "hello"`,
		},
		"say nothing": {
			line:   "say",
			expAnn: "Ann opens their mouth, but hesitates and says nothing.",
			expBo:  "Ann opens their mouth, but hesitates and says nothing.",
			expCy:  "Ann opens their mouth, but hesitates and says nothing.",
		},
		"yell": {
			line:   "yell help me",
			expAnn: `Ann yells, "HELP ME"`,
			expBo:  `Ann yells, "HELP ME"`,
			expCy:  `Ann yells, "HELP ME"`,
			expDee: `Someone nearby yells, "HELP ME"`,
		},
		"yell nothing": {
			line:   "yell",
			expAnn: "Supply something to yell.",
		},
		"whisper": {
			line:   "whisper meet me at noon to bo",
			expAnn: `Ann whispers to Bo, "meet me at noon"`,
			expBo:  `Ann whispers to Bo, "meet me at noon"`,
			expCy:  "Ann whispers something to Bo.",
		},
		"whisper to self": {
			line:   "whisper hush to Ann",
			expAnn: "OK, you murmur something completely inaudible.",
		},
		"whisper without recipient": {
			line:   "whisper hush",
			expAnn: "You didn't specify a recipient, so you whispered to yourself.",
		},
		"whisper to absent player": {
			line:   "whisper hush to Dee",
			expAnn: `There is no such player "Dee" in this room.`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")
			_, boOut := f.join(t, "Bo")
			_, cyOut := f.join(t, "Cy")
			dee, deeOut := f.join(t, "Dee")
			f.exec(t, dee, "north")
			f.pub.reset()

			f.exec(t, ann, tt.line)

			testutil.AssertEqual(t, "ann heard", strings.Join(f.pub.heard(annOut), "|"), tt.expAnn)
			testutil.AssertEqual(t, "bo heard", strings.Join(f.pub.heard(boOut), "|"), tt.expBo)
			testutil.AssertEqual(t, "cy heard", strings.Join(f.pub.heard(cyOut), "|"), tt.expCy)
			testutil.AssertEqual(t, "dee heard", strings.Join(f.pub.heard(deeOut), "|"), tt.expDee)
		})
	}
}

func TestHandler_Quit(t *testing.T) {
	const prompt = `Are you sure you want to quit? Send "quit" again to confirm.`

	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")
	_, boOut := f.join(t, "Bo")

	f.exec(t, ann, "quit", "inventory", "quit")
	testutil.AssertEqual(t, "prompts", strings.Count(strings.Join(f.pub.heard(annOut), "|"), prompt), 2)
	testutil.AssertEqual(t, "still here", f.world.PlayerCount(), 2)

	err := f.handler.Exec(context.Background(), ann, "QUIT")
	testutil.AssertEqual(t, "quit error", errors.Is(err, ErrQuit), true)
	testutil.AssertEqual(t, "player count", f.world.PlayerCount(), 1)

	bo := f.pub.heard(boOut)
	testutil.AssertEqual(t, "bo heard", bo[len(bo)-1], "Ann fades away into nothing.")
}

func TestHandler_Views(t *testing.T) {
	tests := map[string]struct {
		line   string
		expMsg string
	}{
		"look": {
			line:   "look",
			expMsg: "THE LOBBY\nA dusty lobby.\nPlayer Ann (you) is here.\nThere is a brass key, a flashlight, and a statue here.",
		},
		"look here": {
			line:   "l here",
			expMsg: "THE LOBBY\nA dusty lobby.\nPlayer Ann (you) is here.\nThere is a brass key, a flashlight, and a statue here.",
		},
		"look missing": {
			line:   "look lamp",
			expMsg: `There's no such item by the name "lamp" in the room or your inventory.`,
		},
		"look item": {
			line:   "look the statue",
			expMsg: "A marble statue.",
		},
		"look in inventory": {
			line:   "look watch",
			expMsg: "(from your inventory) A pretty basic, battery-powered watch. It currently reads 12:00:00.",
		},
		"exits": {
			line:   "exits",
			expMsg: "North leads to the hall.",
		},
		"inventory": {
			line:   "i",
			expMsg: "You are carrying a watch (1 item).",
		},
		"use": {
			line:   "use watch",
			expMsg: "That cannot be used.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			ann, annOut := f.join(t, "Ann")

			f.exec(t, ann, tt.line)

			testutil.AssertEqual(t, "message", strings.Join(f.pub.heard(annOut), "|"), tt.expMsg)
		})
	}
}

func TestHandler_Who(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")
	f.join(t, "Bo")

	f.exec(t, ann, "who")

	lines := f.pub.heard(annOut)
	testutil.AssertEqual(t, "lines", len(lines), 1)
	testutil.AssertEqual(t, "marks self", strings.Contains(lines[0], "Ann (you)"), true)
	testutil.AssertEqual(t, "lists others", strings.Contains(lines[0], "Bo"), true)
	testutil.AssertEqual(t, "count", strings.HasSuffix(lines[0], "2 players connected."), true)
}

func TestHandler_WhoUsesWorldClock(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	f := newFixture(t, game.WithNow(func() time.Time { return clock }))
	ann, annOut := f.join(t, "Ann")
	bo, _ := f.join(t, "Bo")

	clock = start.Add(30 * time.Second)
	f.exec(t, bo, "look")
	clock = start.Add(150 * time.Second)
	f.exec(t, ann, "who")

	rows := map[string]string{}
	for _, row := range strings.Split(f.pub.heard(annOut)[0], "\n") {
		fields := strings.Fields(row)
		if len(fields) > 0 {
			rows[fields[0]] = row
		}
	}
	testutil.AssertEqual(t, "ann", strings.Contains(rows["Ann"], "just now"), true)
	testutil.AssertEqual(t, "bo", strings.Contains(rows["Bo"], "2 minutes ago"), true)
}

func TestHandler_Help(t *testing.T) {
	f := newFixture(t)
	ann, annOut := f.join(t, "Ann")

	f.exec(t, ann, "?")

	lines := f.pub.heard(annOut)
	testutil.AssertEqual(t, "lines", len(lines), 1)
	for _, c := range f.handler.Commands() {
		testutil.AssertEqual(t, c.Name, strings.Contains(lines[0], c.Name), true)
	}
}

func TestLastHeard(t *testing.T) {
	tests := map[string]struct {
		secs int
		exp  string
	}{
		"now":     {secs: 0, exp: "just now"},
		"second":  {secs: 1, exp: "1 second ago"},
		"seconds": {secs: 42, exp: "42 seconds ago"},
		"minutes": {secs: 125, exp: "2 minutes ago"},
		"hour":    {secs: 3700, exp: "1 hour ago"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "text", lastHeard(time.Duration(tt.secs)*time.Second), tt.exp)
		})
	}
}
