package synthesizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"conlaw/app/client/gemini"
	"conlaw/app/config"
	"conlaw/app/model"

	_ "embed"

	"github.com/samber/do"
)

//go:embed synthesize_prompt_template.txt
var synthesizePromptTemplate string

const (
	synthesizeTemperature = 0.0
	synthesizeMaxTokens   = 8192
)

// LLM is the slice of the Gemini client the synthesizer needs.
type LLM interface {
	Ask(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Service turns fetched evidence into the final research memo.
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

// Synthesize asks the model to write the memo from the fetched
// evidence. On failure it degrades to a partial memo carrying the raw
// case list and a flagged gap, so a run never produces nothing.
func (s *Service) Synthesize(ctx context.Context, question string, evidence *model.Evidence) model.Memo {
	casesText := formatCases(evidence.Cases)
	statutesText := formatStatutes(evidence.Statutes)
	missingText := missingStatutes(evidence)

	templateValues := map[string]string{
		"question":         question,
		"cases":            orDefault(casesText, "No cases were found in the databases."),
		"statutes":         orDefault(statutesText, "No relevant statutes found in database."),
		"missing_statutes": orDefault(missingText, "None."),
	}

	prompt := synthesizePromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", value)
	}

	response, err := s.llm.Ask(ctx, prompt, synthesizeTemperature, synthesizeMaxTokens)
	if err != nil {
		slog.Error("Synthesis model call failed", "error", err)
		return model.Memo{
			TLDR:     fmt.Sprintf("Error generating synthesis: %v", err),
			KeyCases: casesText,
			Gaps:     "- Synthesis failed; the case list above is raw database output.",
		}
	}

	return parseMemo(response)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
