package synthesizer

import (
	"fmt"
	"regexp"
	"strings"

	"conlaw/app/model"

	"github.com/elliotchance/pie/v2"
)

const maxSnippetLen = 800

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// formatCases renders fetched cases into the prompt's evidence block.
func formatCases(cases []model.CaseReference) string {
	if len(cases) == 0 {
		return ""
	}

	var lines []string
	for i, c := range cases {
		snippet := c.Snippet
		if snippet == "" {
			snippet = c.Topic
		}
		if snippet != "" {
			snippet = htmlTagRe.ReplaceAllString(snippet, "")
			snippet = strings.ReplaceAll(snippet, "&amp;", "&")
			if len(snippet) > maxSnippetLen {
				snippet = snippet[:maxSnippetLen]
			}
		}

		citation := c.Citation
		if citation == "" {
			citation = "No citation"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Case %d: %s", i+1, c.CaseName)
		fmt.Fprintf(&b, "\n  Citation: %s", citation)
		if c.Court != "" {
			fmt.Fprintf(&b, "\n  Court: %s", c.Court)
		}
		if c.DateFiled != "" {
			fmt.Fprintf(&b, "\n  Date: %s", c.DateFiled)
		}
		if c.Landmark {
			b.WriteString("\n  [LANDMARK CASE]")
		}
		if c.AbsoluteURL != "" {
			fmt.Fprintf(&b, "\n  CourtListener URL: https://www.courtlistener.com%s", c.AbsoluteURL)
		}
		if snippet != "" {
			fmt.Fprintf(&b, "\n  Excerpt/Topic: %s", snippet)
		}
		b.WriteString("\n")

		lines = append(lines, b.String())
	}

	return strings.Join(lines, "\n")
}

func formatStatutes(statutes []model.StatuteReference) string {
	if len(statutes) == 0 {
		return ""
	}

	var lines []string
	for i, s := range statutes {
		title := s.Title
		if title == "" {
			title = "Unknown"
		}

		entry := fmt.Sprintf("Statute %d: %s", i+1, title)
		if s.Number != "" {
			entry += fmt.Sprintf(" (%s)", s.Number)
		}
		if s.PolicyArea != "" {
			entry += fmt.Sprintf("\n  Policy Area: %s", s.PolicyArea)
		}

		lines = append(lines, entry)
	}

	return strings.Join(lines, "\n")
}

// missingStatutes lists identified statute names the database search
// did not cover. The prompt requires those be labeled as model
// interpretation rather than sourced data.
func missingStatutes(evidence *model.Evidence) string {
	if len(evidence.IdentifiedStatutes) == 0 {
		return ""
	}

	foundTitles := pie.Map(evidence.Statutes, func(s model.StatuteReference) string {
		return strings.ToLower(s.Title)
	})

	var missing []string
	for _, name := range evidence.IdentifiedStatutes {
		nameLower := strings.ToLower(name)

		found := false
		for _, title := range foundTitles {
			if title == "" {
				continue
			}
			if strings.Contains(title, nameLower) || strings.Contains(nameLower, title) {
				found = true
				break
			}
		}

		if !found {
			missing = append(missing, "- "+name)
		}
	}

	return strings.Join(missing, "\n")
}
