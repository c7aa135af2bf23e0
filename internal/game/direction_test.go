package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestResolveDirection(t *testing.T) {
	tests := map[string]struct {
		token  string
		exp    Direction
		expErr error
	}{
		"canonical name":          {token: "north", exp: North},
		"canonical upper case":    {token: "NORTHEAST", exp: Northeast},
		"abbreviation":            {token: "se", exp: Southeast},
		"abbreviation mixed case": {token: "Sw", exp: Southwest},
		"single letter":           {token: "w", exp: West},
		"up":                      {token: "up", exp: Up},
		"down mixed case":         {token: "DoWn", exp: Down},
		"unknown":                 {token: "sideways", expErr: ErrNoSuchDirection},
		"empty":                   {token: "", expErr: ErrNoSuchDirection},
		"prefix is not enough":    {token: "nor", expErr: ErrNoSuchDirection},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			d, err := ResolveDirection(tt.token)
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "direction", d, tt.exp)
		})
	}
}

func TestResolveDirection_EveryNameAndAbbreviation(t *testing.T) {
	for _, d := range Directions() {
		tokens := append([]string{d.String()}, d.Abbreviations()...)
		for _, tok := range tokens {
			got, err := ResolveDirection(tok)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", tok, err)
			}
			testutil.AssertEqual(t, tok, got, d)
		}
	}
}

func TestDirection_String(t *testing.T) {
	testutil.AssertEqual(t, "north", North.String(), "north")
	testutil.AssertEqual(t, "down", Down.String(), "down")
	testutil.AssertEqual(t, "out of range", Direction(42).String(), "unknown")
	testutil.AssertEqual(t, "count", len(Directions()), 10)
}
