package synthesizer

import (
	"context"
	"errors"
	"testing"

	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	response string
	err      error
	prompt   string
}

func (s *scriptedLLM) Ask(_ context.Context, prompt string, _ float64, _ int) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func TestSynthesize(t *testing.T) {
	llm := &scriptedLLM{response: `## TLDR
Probably not.

## KEY CASES
- Harlow v. Fitzgerald

## RELEVANT STATUTES
- 42 U.S.C. § 1983

## ANSWER
Detailed analysis here.

## GAPS
- None.`}

	s := &Service{cfg: &config.Config{}, llm: llm}

	evidence := &model.Evidence{
		Cases: []model.CaseReference{
			{CaseName: "Harlow v. Fitzgerald", Citation: "457 U.S. 800"},
		},
		Statutes: []model.StatuteReference{
			{Title: "Civil Rights Act of 1871"},
		},
		IdentifiedStatutes: []string{"42 U.S.C. § 1983"},
	}

	memo := s.Synthesize(t.Context(), "Can I sue?", evidence)

	assert.Equal(t, "Probably not.", memo.TLDR)
	assert.Equal(t, "Detailed analysis here.", memo.Answer)

	// The prompt carries the question and the formatted evidence.
	assert.Contains(t, llm.prompt, "Can I sue?")
	assert.Contains(t, llm.prompt, "Case 1: Harlow v. Fitzgerald")
	assert.Contains(t, llm.prompt, "Statute 1: Civil Rights Act of 1871")
	assert.Contains(t, llm.prompt, "- 42 U.S.C. § 1983")
}

func TestSynthesizeEmptyEvidence(t *testing.T) {
	llm := &scriptedLLM{response: "## ANSWER\nNothing found."}

	s := &Service{cfg: &config.Config{}, llm: llm}

	s.Synthesize(t.Context(), "anything?", &model.Evidence{})

	assert.Contains(t, llm.prompt, "No cases were found in the databases.")
	assert.Contains(t, llm.prompt, "No relevant statutes found in database.")
	assert.Contains(t, llm.prompt, "None.")
}

func TestSynthesizeDegradesOnModelFailure(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("quota exceeded")}

	s := &Service{cfg: &config.Config{}, llm: llm}

	evidence := &model.Evidence{
		Cases: []model.CaseReference{{CaseName: "Harlow v. Fitzgerald"}},
	}

	memo := s.Synthesize(t.Context(), "Can I sue?", evidence)

	require.Contains(t, memo.TLDR, "quota exceeded")
	assert.Contains(t, memo.KeyCases, "Harlow v. Fitzgerald")
	assert.Contains(t, memo.Gaps, "Synthesis failed")
}
