// Command storysample renders damage stories from the content tables so
// writers can eyeball variety without running the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/content"
	"github.com/dzaramelcone/ninjamagic/core"
)

func main() {
	storyKey := flag.String("story", "blade", "damage story key")
	count := flag.Int("n", 10, "stories to sample")
	seed := flag.Int64("seed", 0, "rng seed (0 = default)")
	frac := flag.Float64("frac", 0.3, "damage fraction of max health")
	flag.Parse()

	if err := content.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed != 0 {
		core.SeedRNG(*seed)
	}

	attacker := component.Noun{Value: "duelist", Pronoun: component.PronounShe, Num: core.Singular}
	target := component.Noun{Value: "brigand", Pronoun: component.PronounHe, Num: core.Singular}

	for i := 0; i < *count; i++ {
		tpl := content.DamageStory(*storyKey, *frac)
		fmt.Println(core.AutoCap(content.VFormat(tpl,
			[]component.Noun{attacker, target}, content.ChooseWords(tpl))))
	}
}
