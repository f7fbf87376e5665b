package fetcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"conlaw/app/client/congress"
	"conlaw/app/client/courtlistener"
	"conlaw/app/client/scotus"
	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCases struct {
	mu      sync.Mutex
	queries []string
	results map[string][]model.CaseReference
	err     error
}

func (s *stubCases) SearchOpinions(_ context.Context, query string, _ courtlistener.SearchOptions) ([]model.CaseReference, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.results[query], nil
}

type stubStatutes struct {
	mu      sync.Mutex
	queries []string
	results []model.StatuteReference
	err     error
}

func (s *stubStatutes) SearchBills(_ context.Context, query string, _ congress.SearchOptions) ([]model.StatuteReference, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func newTestService(cases CaseSearcher, statutes StatuteSearcher) *Service {
	landmarks, _ := scotus.NewClient(nil)
	return &Service{
		cfg: &config.Config{
			Research: config.Research{CaseResults: 3, QueryResults: 5, FetchWorkers: 5},
		},
		cases:     cases,
		statutes:  statutes,
		landmarks: landmarks,
	}
}

func TestFetchMergesAllSources(t *testing.T) {
	cases := &stubCases{results: map[string][]model.CaseReference{
		`"Harlow v. Fitzgerald"`: {
			{CaseName: "Harlow v. Fitzgerald", Court: "scotus", DateFiled: "1982-06-24"},
		},
		"qualified immunity": {
			{CaseName: "Some Circuit Case", Court: "ca5", DateFiled: "2015-02-02"},
			{CaseName: "Harlow v. Fitzgerald", Court: "scotus", DateFiled: "1982-06-24"},
		},
	}}
	statutes := &stubStatutes{results: []model.StatuteReference{
		{Title: "Civil Rights Act of 1871", Number: "HR 320"},
	}}

	s := newTestService(cases, statutes)

	evidence := s.Fetch(t.Context(), model.Targets{
		Cases:         []string{"Harlow v. Fitzgerald"},
		Statutes:      []string{"42 U.S.C. § 1983"},
		SearchQueries: []string{"qualified immunity"},
	})

	// Harlow appears via both the name lookup and the broad search,
	// but survives only once.
	require.Len(t, evidence.Cases, 2)
	names := []string{evidence.Cases[0].CaseName, evidence.Cases[1].CaseName}
	assert.Contains(t, names, "Harlow v. Fitzgerald")
	assert.Contains(t, names, "Some Circuit Case")

	require.Len(t, evidence.Statutes, 1)
	assert.Equal(t, "Civil Rights Act of 1871", evidence.Statutes[0].Title)

	assert.Equal(t, []string{"42 U.S.C. § 1983"}, evidence.IdentifiedStatutes)

	// SCOTUS outranks the circuit case.
	assert.Equal(t, "scotus", evidence.Cases[0].Court)
}

func TestFetchRetriesLooseSearch(t *testing.T) {
	cases := &stubCases{results: map[string][]model.CaseReference{
		"Harlow v. Fitzgerald": {
			{CaseName: "Harlow v. Fitzgerald", Court: "scotus"},
		},
	}}

	s := newTestService(cases, &stubStatutes{})

	evidence := s.Fetch(t.Context(), model.Targets{Cases: []string{"Harlow v. Fitzgerald"}})

	require.Len(t, evidence.Cases, 1)
	assert.Contains(t, cases.queries, `"Harlow v. Fitzgerald"`)
	assert.Contains(t, cases.queries, "Harlow v. Fitzgerald")
}

func TestFetchStripsCitationSymbols(t *testing.T) {
	statutes := &stubStatutes{results: []model.StatuteReference{{Title: "Some Act"}}}

	s := newTestService(&stubCases{}, statutes)

	s.Fetch(t.Context(), model.Targets{Statutes: []string{"42 U.S.C. § 1983"}})

	require.Len(t, statutes.queries, 1)
	assert.NotContains(t, statutes.queries[0], "§")
	assert.NotContains(t, statutes.queries[0], "U.S.C.")
	assert.Contains(t, statutes.queries[0], "1983")
}

func TestFetchToleratesUpstreamFailure(t *testing.T) {
	cases := &stubCases{err: errors.New("courtlistener down")}
	statutes := &stubStatutes{results: []model.StatuteReference{{Title: "Some Act"}}}

	s := newTestService(cases, statutes)

	evidence := s.Fetch(t.Context(), model.Targets{
		Cases:    []string{"Harlow v. Fitzgerald"},
		Statutes: []string{"Some Act"},
	})

	assert.Empty(t, evidence.Cases)
	require.Len(t, evidence.Statutes, 1)
}

func TestFetchAppendsLandmarks(t *testing.T) {
	// The databases return nothing, but the identified name carries a
	// landmark topic keyword.
	s := newTestService(&stubCases{}, &stubStatutes{})

	evidence := s.Fetch(t.Context(), model.Targets{
		Cases: []string{"Miranda v. Arizona due process"},
	})

	found := false
	for _, c := range evidence.Cases {
		if strings.Contains(c.CaseName, "Miranda") {
			found = true
			assert.True(t, c.Landmark)
		}
	}
	assert.True(t, found, "expected landmark Miranda entry, got %+v", evidence.Cases)
}
