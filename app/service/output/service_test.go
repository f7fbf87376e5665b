package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	return &Service{
		cfg: &config.Config{
			Research: config.Research{OutputDir: t.TempDir()},
		},
		now: func() time.Time {
			return time.Date(2025, time.June, 1, 14, 30, 5, 0, time.UTC)
		},
	}
}

func TestSave(t *testing.T) {
	s := newTestService(t)

	path, err := s.Save("Can police search my phone?", model.Memo{
		TLDR:     "Not without a warrant.",
		KeyCases: "- Riley v. California",
		Statutes: "- None",
		Answer:   "Riley requires a warrant.",
		Gaps:     "- None.",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01_14-30-05_Can_police_search_my_phone.json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved map[string]string
	require.NoError(t, json.Unmarshal(data, &saved))

	assert.Equal(t, "Can police search my phone?", saved["question"])
	assert.Equal(t, "2025-06-01T14:30:05Z", saved["timestamp"])
	assert.Equal(t, "Not without a warrant.", saved["tldr"])
	assert.Equal(t, "- Riley v. California", saved["key_cases"])
	assert.Equal(t, "Riley requires a warrant.", saved["answer"])
	assert.Equal(t, "- None.", saved["gaps"])

	_, err = uuid.Parse(saved["run_id"])
	assert.NoError(t, err)
}

func TestSaveCreatesOutputDir(t *testing.T) {
	s := newTestService(t)
	s.cfg.Research.OutputDir = filepath.Join(t.TempDir(), "nested", "output")

	path, err := s.Save("question", model.Memo{})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSlug(t *testing.T) {
	tts := []struct {
		in       string
		expected string
	}{
		{"Can police search my phone?", "Can_police_search_my_phone"},
		{"What is 42 U.S.C. § 1983?", "What_is_42_USC_1983"},
		{"???", "research"},
		{"", "research"},
		{
			"a very long question that keeps going well past the cutoff point",
			"a_very_long_question_that_keeps_going_we",
		},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.expected, slug(tt.in), "%q", tt.in)
	}
}
