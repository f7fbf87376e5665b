package gemini

import (
	"context"
	"strings"
	"time"

	"conlaw/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const callTimeout = 90 * time.Second

// Client wraps the Gemini API behind a single Ask call. Both LLM
// stages (identification and synthesis) share one client.
type Client struct {
	cfg *config.Config
	llm llms.Model
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	c := &Client{cfg: cfg}

	if cfg.Gemini.APIKey == "" {
		// Unconfigured client still constructs so the REPL can report
		// the missing key instead of main crashing.
		return c, nil
	}

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.Gemini.APIKey),
		googleai.WithDefaultModel(cfg.Gemini.Model),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create gemini client: %w", err)
	}

	c.llm = llm

	return c, nil
}

func (c *Client) IsConfigured() bool {
	return c.llm != nil
}

// Ask sends a prompt and returns the model's text. A failed or empty
// response is retried once on the fallback model before giving up.
func (c *Client) Ask(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	if c.llm == nil {
		return "", oops.Errorf("gemini api key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}

	fallback, fbErr := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithModel(c.cfg.Gemini.FallbackModel),
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if fbErr != nil {
		if err != nil {
			return "", oops.Errorf("gemini request failed: %w", err)
		}
		return "", oops.Errorf("gemini fallback request failed: %w", fbErr)
	}

	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		return "", oops.Errorf("gemini returned an empty response on both models")
	}

	return fallback, nil
}
