package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/google/uuid"
	"github.com/samber/do"
)

const (
	maxSlugLen        = 40
	filenameTimestamp = "2006-01-02_15-04-05"
)

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// Service writes one JSON file per research run.
type Service struct {
	cfg *config.Config
	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg: do.MustInvoke[*config.Config](di),
		now: time.Now,
	}, nil
}

type payload struct {
	Question  string `json:"question"`
	Timestamp string `json:"timestamp"`
	RunID     string `json:"run_id"`
	TLDR      string `json:"tldr"`
	KeyCases  string `json:"key_cases"`
	Statutes  string `json:"statutes"`
	Answer    string `json:"answer"`
	Gaps      string `json:"gaps"`
}

// Save writes the memo under the output dir and returns the path.
func (s *Service) Save(question string, memo model.Memo) (string, error) {
	if err := os.MkdirAll(s.cfg.Research.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	now := s.now()
	filename := fmt.Sprintf("%s_%s.json", now.Format(filenameTimestamp), slug(question))
	path := filepath.Join(s.cfg.Research.OutputDir, filename)

	data, err := json.MarshalIndent(payload{
		Question:  question,
		Timestamp: now.Format(time.RFC3339),
		RunID:     uuid.NewString(),
		TLDR:      memo.TLDR,
		KeyCases:  memo.KeyCases,
		Statutes:  memo.Statutes,
		Answer:    memo.Answer,
		Gaps:      memo.Gaps,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result: %w", err)
	}

	return path, nil
}

// slug builds a short filename-safe fragment from the question.
func slug(s string) string {
	s = slugStripRe.ReplaceAllString(s, "")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	s = slugCollapseRe.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return "research"
	}
	return s
}
