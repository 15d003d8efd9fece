package content

import (
	"strconv"
	"strings"

	"github.com/dzaramelcone/ninjamagic/component"
	"github.com/dzaramelcone/ninjamagic/core"
)

// Placeholder syntax: "{0}" and "{0:spec}" reference positional nouns
// under the noun format mini-language; "{word}" references either a
// kwarg or a story table entry, expanded recursively.

type placeholder struct {
	key  string
	spec string
}

// parseTemplate splits tpl into literal runs and placeholders.
func parseTemplate(tpl string) (literals []string, holes []placeholder) {
	rest := tpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			literals = append(literals, rest)
			return literals, holes
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			literals = append(literals, rest)
			return literals, holes
		}
		closing += open
		literals = append(literals, rest[:open])
		body := rest[open+1 : closing]
		key, spec, _ := strings.Cut(body, ":")
		holes = append(holes, placeholder{key: key, spec: spec})
		rest = rest[closing+1:]
	}
}

// VFormat renders a template against positional nouns and kwargs.
// Unknown placeholders render empty, matching the drop-on-miss policy.
func VFormat(tpl string, args []component.Noun, kwargs map[string]string) string {
	literals, holes := parseTemplate(tpl)
	var b strings.Builder
	for i, lit := range literals {
		b.WriteString(lit)
		if i >= len(holes) {
			continue
		}
		h := holes[i]
		if idx, err := strconv.Atoi(h.key); err == nil {
			if idx >= 0 && idx < len(args) {
				b.WriteString(args[idx].Format(h.spec))
			}
			continue
		}
		if v, ok := kwargs[h.key]; ok {
			b.WriteString(v)
		}
	}
	return b.String()
}

// ChooseWords resolves a template's named holes against the shared word
// table, one choice per key, expanding nested references. The caller
// renders the same template for several audiences with one choice set
// so every listener hears the same story.
func ChooseWords(tpl string) map[string]string {
	chosen := make(map[string]string)

	var resolve func(key string)
	resolve = func(key string) {
		if _, done := chosen[key]; done {
			return
		}
		variants := Stories[key]
		if len(variants) == 0 {
			return
		}
		val := variants[core.RNG.Intn(len(variants))]
		_, holes := parseTemplate(val)
		for _, h := range holes {
			if _, err := strconv.Atoi(h.key); err == nil {
				continue
			}
			resolve(h.key)
		}
		chosen[key] = VFormat(val, nil, chosen)
	}

	_, holes := parseTemplate(tpl)
	for _, h := range holes {
		if _, err := strconv.Atoi(h.key); err != nil {
			resolve(h.key)
		}
	}
	return chosen
}

// Render picks a variant of start from data and expands nested named
// placeholders depth-first, each expanded at most once per rendering so
// repeated references agree. Positional holes render against args.
func Render(data map[string][]string, start string, args ...component.Noun) string {
	chosen := make(map[string]string)

	var dfs func(key string) string
	dfs = func(key string) string {
		variants := data[key]
		if len(variants) == 0 {
			return ""
		}
		val := variants[core.RNG.Intn(len(variants))]
		_, holes := parseTemplate(val)
		for _, h := range holes {
			if _, err := strconv.Atoi(h.key); err == nil {
				continue
			}
			if _, done := chosen[h.key]; done {
				continue
			}
			if _, ok := data[h.key]; ok {
				chosen[h.key] = dfs(h.key)
			}
		}
		return VFormat(val, args, chosen)
	}

	return core.AutoCap(dfs(start))
}
