package system

import (
	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
	"github.com/dzaramelcone/ninjamagic/engine"
	"github.com/dzaramelcone/ninjamagic/signal"
)

func nounOf(w *engine.World, e core.Entity) component.Noun {
	if n, ok := w.C.Noun.Get(e); ok {
		return n
	}
	return component.Noun{Value: "something", Pronoun: component.PronounIt, Num: core.Singular}
}

// renderFor renders a story template with args[firstPerson] replaced by
// "you".
func renderFor(w *engine.World, story string, args []core.Entity, kwargs map[string]string, firstPerson core.Entity) string {
	nouns := make([]component.Noun, len(args))
	for i, e := range args {
		if e == firstPerson && e != core.None {
			nouns[i] = component.You
		} else {
			nouns[i] = nounOf(w, e)
		}
	}
	return core.AutoCap(content.VFormat(story, nouns, kwargs))
}

// StoryEcho renders a story for the source, the optional target, and
// bystanders within reach, and pulses the outbound fan.
// args[0] is the actor; args[1], when present, the target.
func StoryEcho(w *engine.World, bus *signal.Bus, story string, reach component.Reach, kwargs map[string]string, args ...core.Entity) {
	if reach == nil {
		reach = component.Adjacent
	}

	var source core.Entity
	if len(args) > 0 {
		source = args[0]
	}
	if source != core.None && w.C.Connection.Has(source) {
		bus.Outbound.Pulse(signal.Outbound{
			To:   source,
			Text: renderFor(w, story, args, kwargs, source),
		})
	}

	var target core.Entity
	targetText := ""
	if len(args) > 1 && w.C.Connection.Has(args[1]) {
		target = args[1]
		targetText = renderFor(w, story, args, kwargs, target)
	}

	bus.Emit.Pulse(signal.Emit{
		Source:     source,
		Reach:      reach,
		Text:       renderFor(w, story, args, kwargs, core.None),
		Target:     target,
		TargetText: targetText,
	})
}

// Broadcast sends text to every connected entity.
func Broadcast(w *engine.World, bus *signal.Bus, text string) {
	for _, e := range w.C.Connection.All() {
		bus.Outbound.Pulse(signal.Outbound{To: e, Text: text})
	}
}
