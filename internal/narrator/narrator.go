package narrator

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
)

// Event names a kind of narrated happening.
type Event string

const (
	Materialize    Event = "materialize"
	Dematerialize  Event = "dematerialize"
	Depart         Event = "depart"
	Arrive         Event = "arrive"
	Take           Event = "take"
	Drop           Event = "drop"
	Give           Event = "give"
	Say            Event = "say"
	SayNothing     Event = "say_nothing"
	Yell           Event = "yell"
	DistantYell    Event = "distant_yell"
	Whisper        Event = "whisper"
	UnheardWhisper Event = "unheard_whisper"
	Lock           Event = "lock"
	Unlock         Event = "unlock"
)

// Facts are the semantic details of a happening that templates may refer to.
type Facts struct {
	Actor     string
	Target    string
	Item      string
	Door      string
	Direction string
	Text      string
}

// Narrator turns a happening into a display line.
type Narrator interface {
	Narrate(e Event, f Facts) string
}

var defaultTemplates = map[Event][]string{
	Materialize: {
		"{{ .Actor }} materializes out of thin air.",
		"{{ .Actor }} appears in a puff of smoke.",
		"The air shimmers and {{ .Actor }} steps out of it.",
	},
	Dematerialize: {
		"{{ .Actor }} fades away into nothing.",
		"{{ .Actor }} vanishes without a trace.",
		"{{ .Actor }} flickers and is gone.",
	},
	Depart: {
		"{{ .Actor }} leaves {{ .Direction }}{{ if .Door }} through the {{ .Door }}{{ end }}.",
		"{{ .Actor }} heads {{ .Direction }}{{ if .Door }} through the {{ .Door }}{{ end }}.",
	},
	Arrive: {
		"{{ .Actor }} arrives{{ if .Door }} through the {{ .Door }}{{ end }}.",
		"{{ .Actor }} walks in{{ if .Door }} through the {{ .Door }}{{ end }}.",
	},
	Take: {
		"{{ .Actor }} takes the {{ .Item }}.",
		"{{ .Actor }} picks up the {{ .Item }}.",
	},
	Drop: {
		"{{ .Actor }} drops the {{ .Item }}.",
		"{{ .Actor }} puts down the {{ .Item }}.",
	},
	Give: {
		"{{ .Actor }} gives the {{ .Item }} to {{ .Target }}.",
		"{{ .Actor }} hands the {{ .Item }} to {{ .Target }}.",
	},
	Say:            {`{{ .Actor }} says, "{{ .Text }}"`},
	SayNothing:     {"{{ .Actor }} opens their mouth, but hesitates and says nothing."},
	Yell:           {`{{ .Actor }} yells, "{{ .Text | upper }}"`},
	DistantYell:    {`Someone nearby yells, "{{ .Text | upper }}"`},
	Whisper:        {`{{ .Actor }} whispers to {{ .Target }}, "{{ .Text }}"`},
	UnheardWhisper: {"{{ .Actor }} whispers something to {{ .Target }}."},
	Lock:           {"{{ .Actor }} locks the {{ .Door }}."},
	Unlock:         {"{{ .Actor }} unlocks the {{ .Door }}."},
}

// Events returns every known event name in sorted order.
func Events() []Event {
	events := make([]Event, 0, len(defaultTemplates))
	for e := range defaultTemplates {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}

// TemplateNarrator renders events through text/template with sprig functions.
// Each event may have several phrasings; one is picked at random.
type TemplateNarrator struct {
	templates map[Event][]*template.Template
	pick      func(n int) int
}

// TemplateNarratorOpt configures a TemplateNarrator.
type TemplateNarratorOpt func(*TemplateNarrator)

// WithPicker overrides how a phrasing is chosen among n alternatives.
func WithPicker(pick func(n int) int) TemplateNarratorOpt {
	return func(t *TemplateNarrator) {
		t.pick = pick
	}
}

// NewTemplateNarrator builds a narrator from the default phrasings with
// overrides replacing them per event.
func NewTemplateNarrator(overrides map[string][]string, opts ...TemplateNarratorOpt) (*TemplateNarrator, error) {
	el := errors.NewErrorList()

	for name := range overrides {
		if _, ok := defaultTemplates[Event(name)]; !ok {
			el.Add(fmt.Errorf("unknown narration event %q", name))
		}
	}

	n := &TemplateNarrator{
		templates: make(map[Event][]*template.Template, len(defaultTemplates)),
		pick:      rand.IntN,
	}
	for _, opt := range opts {
		opt(n)
	}

	for e, phrasings := range defaultTemplates {
		if o, ok := overrides[string(e)]; ok && len(o) > 0 {
			phrasings = o
		}
		for i, p := range phrasings {
			tmpl, err := template.New(fmt.Sprintf("%s-%d", e, i)).Funcs(sprig.TxtFuncMap()).Parse(p)
			if err != nil {
				el.Add(fmt.Errorf("narration %s: parsing template: %w", e, err))
				continue
			}
			n.templates[e] = append(n.templates[e], tmpl)
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return n, nil
}

// Narrate renders e with f. A template that fails to execute falls back to
// a plain sentence so the happening is never silently lost.
func (n *TemplateNarrator) Narrate(e Event, f Facts) string {
	tmpls := n.templates[e]
	if len(tmpls) == 0 {
		return fallback(e, f)
	}
	tmpl := tmpls[n.pick(len(tmpls))]

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, f); err != nil {
		slog.Warn("executing narration template", "event", string(e), "error", err)
		return fallback(e, f)
	}
	return strings.TrimSpace(buf.String())
}

func fallback(e Event, f Facts) string {
	return fmt.Sprintf("%s: %s", f.Actor, strings.ReplaceAll(string(e), "_", " "))
}
