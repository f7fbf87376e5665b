package repl

import (
	"fmt"
	"strings"

	"conlaw/app/model"

	"github.com/charmbracelet/lipgloss"
)

const contentWidth = 70

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true).
			PaddingLeft(2)
	tldrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			PaddingLeft(2)
	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true).
			PaddingLeft(2)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			PaddingLeft(2)
	dimStyle = lipgloss.NewStyle().
			Faint(true)
	bodyStyle = lipgloss.NewStyle().
			Width(contentWidth - 2).
			PaddingLeft(2)
	ruleStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
)

var rule = strings.Repeat("─", contentWidth)

func (s *Service) printBanner() {
	bar := headerStyle.Render(strings.Repeat("═", contentWidth))
	fmt.Println()
	fmt.Println(bar)
	fmt.Println(headerStyle.Render("  ⚖  Constitutional Law Research Agent"))
	fmt.Println(dimStyle.Render("  Gemini → CourtListener + SCOTUS + Congress.gov → Gemini"))
	fmt.Println(bar)
}

func (s *Service) printMemo(memo model.Memo) {
	fmt.Println()
	fmt.Println(tldrStyle.Render(rule))
	fmt.Println(tldrStyle.Render("💡 TLDR"))
	fmt.Println(tldrStyle.Render(rule))
	fmt.Println(body(memo.TLDR, "No summary available."))

	printSection(sectionStyle, "⚖  KEY CASES", memo.KeyCases)
	printSection(sectionStyle, "📜 RELEVANT STATUTES", memo.Statutes)
	printSection(answerStyle, "📋 ANSWER", memo.Answer)
	printSection(sectionStyle, "🔍 GAPS IN THIS RESEARCH", memo.Gaps)

	fmt.Println()
	fmt.Println(ruleStyle.Render(rule))
	fmt.Println(dimStyle.Render("  ⚠  For research only. Not legal advice."))
}

func printSection(style lipgloss.Style, title, text string) {
	if text == "" {
		return
	}

	fmt.Println()
	fmt.Println(style.Render(title))
	fmt.Println(ruleStyle.Render(rule))
	fmt.Println(body(text, ""))
}

// body wraps and indents free text, keeping blank lines between
// paragraphs.
func body(text, fallback string) string {
	if text == "" {
		text = fallback
	}

	var rendered []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			rendered = append(rendered, "")
			continue
		}
		rendered = append(rendered, bodyStyle.Render(strings.TrimSpace(line)))
	}

	return strings.Join(rendered, "\n")
}
