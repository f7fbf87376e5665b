package fetcher

import (
	"testing"

	"conlaw/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCaseName(t *testing.T) {
	tts := []struct {
		in       string
		expected string
	}{
		{"Harlow v. Fitzgerald", "harlow v fitzgerald"},
		{"HARLOW vs. FITZGERALD", "harlow v fitzgerald"},
		{"  Katz   v.  United  States ", "katz v united states"},
		{"N.Y. Times Co. v. Sullivan", "ny times co v sullivan"},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.expected, normalizeCaseName(tt.in))
	}
}

func TestNamesMatch(t *testing.T) {
	tts := []struct {
		a, b     string
		expected bool
	}{
		{"Harlow v. Fitzgerald", "harlow v. fitzgerald", true},
		{"Harlow v. Fitzgerald", "Harlow v. Fitzgerald, 457 U.S. 800", true},
		{"Carpenter v. United States", "Carpenter v. United States of America", true},
		{"Harlow v. Fitzgerald", "Pearson v. Callahan", false},
		{"", "Harlow v. Fitzgerald", false},
		// Shared 6-char party prefixes.
		{"Fitzgerald v. Barnstable School Committee", "Fitzgerald v. Barnstable Sch. Comm.", true},
	}

	for _, tt := range tts {
		assert.Equal(t, tt.expected, namesMatch(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestBestMatch(t *testing.T) {
	results := []model.CaseReference{
		{CaseName: "Pearson v. Callahan"},
		{CaseName: "Harlow v. Fitzgerald"},
	}

	best, ok := bestMatch("harlow v. fitzgerald", results)
	require.True(t, ok)
	assert.Equal(t, "Harlow v. Fitzgerald", best.CaseName)
}

func TestBestMatchPartialParties(t *testing.T) {
	results := []model.CaseReference{
		{CaseName: "Unrelated v. Case"},
		{CaseName: "In re Fitzgerald and Harlow litigation"},
	}

	best, ok := bestMatch("Harlow v. Fitzgerald", results)
	require.True(t, ok)
	assert.Equal(t, "In re Fitzgerald and Harlow litigation", best.CaseName)
}

func TestBestMatchFallsBackToTopResult(t *testing.T) {
	results := []model.CaseReference{
		{CaseName: "Totally Different v. Something"},
	}

	best, ok := bestMatch("Harlow v. Fitzgerald", results)
	require.True(t, ok)
	assert.Equal(t, "Totally Different v. Something", best.CaseName)
}

func TestBestMatchEmpty(t *testing.T) {
	_, ok := bestMatch("Harlow v. Fitzgerald", nil)
	assert.False(t, ok)
}

func TestDedupe(t *testing.T) {
	cases := []model.CaseReference{
		{CaseName: "Harlow v. Fitzgerald"},
		{CaseName: "HARLOW V. FITZGERALD"},
		{CaseName: "Pearson v. Callahan"},
		{CaseName: ""},
	}

	unique := dedupe(cases)

	require.Len(t, unique, 2)
	assert.Equal(t, "Harlow v. Fitzgerald", unique[0].CaseName)
	assert.Equal(t, "Pearson v. Callahan", unique[1].CaseName)
}

func TestCourtRank(t *testing.T) {
	tts := []struct {
		name     string
		ref      model.CaseReference
		expected int
	}{
		{"landmark", model.CaseReference{Landmark: true}, 0},
		{"scotus id", model.CaseReference{Court: "scotus"}, 0},
		{"supreme court name", model.CaseReference{Court: "Supreme Court of the United States"}, 0},
		{"circuit id", model.CaseReference{Court: "ca9"}, 1},
		{"circuit name", model.CaseReference{Court: "Court of Appeals for the Ninth Circuit"}, 1},
		{"district", model.CaseReference{Court: "District Court, N.D. Cal."}, 2},
		{"unknown", model.CaseReference{}, 2},
	}

	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, courtRank(tt.ref))
		})
	}
}

func TestRank(t *testing.T) {
	cases := []model.CaseReference{
		{CaseName: "District Old", Court: "dcd", DateFiled: "1999-01-01"},
		{CaseName: "Circuit New", Court: "ca2", DateFiled: "2020-01-01"},
		{CaseName: "SCOTUS Old", Court: "scotus", DateFiled: "1967-12-18"},
		{CaseName: "SCOTUS New", Court: "scotus", DateFiled: "2018-06-22"},
	}

	rank(cases)

	assert.Equal(t, "SCOTUS New", cases[0].CaseName)
	assert.Equal(t, "SCOTUS Old", cases[1].CaseName)
	assert.Equal(t, "Circuit New", cases[2].CaseName)
	assert.Equal(t, "District Old", cases[3].CaseName)
}
