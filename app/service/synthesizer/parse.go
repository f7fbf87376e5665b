package synthesizer

import (
	"strings"

	"conlaw/app/model"
)

var sectionMarkers = []struct {
	keyword string
	assign  func(*model.Memo, string)
}{
	{"TLDR", func(m *model.Memo, v string) { m.TLDR = v }},
	{"KEY CASES", func(m *model.Memo, v string) { m.KeyCases = v }},
	{"RELEVANT STATUTES", func(m *model.Memo, v string) { m.Statutes = v }},
	{"ANSWER", func(m *model.Memo, v string) { m.Answer = v }},
	{"GAPS", func(m *model.Memo, v string) { m.Gaps = v }},
}

// parseMemo splits the model's response on the five required section
// headers. Header lines tolerate markdown hash prefixes and casing.
// A response with no recognizable header becomes the answer wholesale.
func parseMemo(text string) model.Memo {
	var memo model.Memo

	assign := func(_ *model.Memo, _ string) {}
	started := false
	var current []string

	flush := func() {
		if started {
			assign(&memo, strings.TrimSpace(strings.Join(current, "\n")))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		upper := strings.ToUpper(stripped)

		matched := false
		for _, marker := range sectionMarkers {
			if strings.HasPrefix(upper, marker.keyword) {
				flush()
				assign = marker.assign
				started = true
				current = nil
				matched = true
				break
			}
		}

		if !matched && started {
			current = append(current, line)
		}
	}
	flush()

	if memo == (model.Memo{}) {
		memo.Answer = text
	}

	return memo
}
