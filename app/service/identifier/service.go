package identifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"conlaw/app/client/gemini"
	"conlaw/app/config"
	"conlaw/app/model"

	_ "embed"

	"github.com/samber/do"
)

//go:embed identify_prompt_template.txt
var identifyPromptTemplate string

const (
	identifyTemperature = 0.0
	identifyMaxTokens   = 2048
	maxExtractedCases   = 10
)

// caseNameRe matches "Something v. Something" case names in prose.
var caseNameRe = regexp.MustCompile(`([A-Z][a-zA-Z\s\.\',]+\s+v\.\s+[A-Z][a-zA-Z\s\.\',]+)`)

var stopWords = map[string]bool{
	"what": true, "how": true, "is": true, "the": true, "in": true,
	"for": true, "has": true, "been": true, "are": true, "does": true,
	"do": true, "can": true, "a": true, "an": true, "of": true,
	"to": true, "and": true, "or": true,
}

// LLM is the slice of the Gemini client the identifier needs.
type LLM interface {
	Ask(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Service asks the model which cases and statutes matter for a
// question before any database is searched.
type Service struct {
	cfg *config.Config
	llm LLM
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg: do.MustInvoke[*config.Config](di),
		llm: do.MustInvoke[*gemini.Client](di),
	}, nil
}

// Identify never fails outright: if the model call or its JSON cannot
// be used, it degrades to name extraction and then to plain search
// queries built from the question itself.
func (s *Service) Identify(ctx context.Context, question string) model.Targets {
	prompt := strings.ReplaceAll(identifyPromptTemplate, "{question}", question)

	response, err := s.llm.Ask(ctx, prompt, identifyTemperature, identifyMaxTokens)
	if err != nil {
		slog.Error("Identifier model call failed", "error", err)
		return fallbackTargets(question)
	}

	return parseResponse(response)
}

func parseResponse(text string) model.Targets {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "`")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSpace(text)

	var targets model.Targets
	if err := json.Unmarshal([]byte(text), &targets); err != nil {
		slog.Warn("Could not parse identifier JSON, extracting case names from text",
			"error", err)
		return extractFromText(text)
	}

	return targets
}

// extractFromText pulls case names out of prose when the model ignored
// the JSON instruction.
func extractFromText(text string) model.Targets {
	var cases []string

	for _, match := range caseNameRe.FindAllString(text, -1) {
		name := strings.TrimRight(strings.TrimSpace(match), ",.")
		if len(name) <= 5 {
			continue
		}

		duplicate := false
		for _, existing := range cases {
			if existing == name {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		cases = append(cases, name)
		if len(cases) >= maxExtractedCases {
			break
		}
	}

	return model.Targets{Cases: cases}
}

// fallbackTargets builds a bare search query from the question's
// meaningful words so the fetch stage still has something to do.
func fallbackTargets(question string) model.Targets {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(question)) {
		word = strings.Trim(word, "?.,!")
		if stopWords[word] || len(word) <= 3 {
			continue
		}

		terms = append(terms, word)
		if len(terms) == 5 {
			break
		}
	}

	if len(terms) == 0 {
		return model.Targets{}
	}

	return model.Targets{SearchQueries: []string{strings.Join(terms, " ")}}
}
