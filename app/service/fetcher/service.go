package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"conlaw/app/client/congress"
	"conlaw/app/client/courtlistener"
	"conlaw/app/client/scotus"
	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

// CaseSearcher is the slice of the CourtListener client the fetcher uses.
type CaseSearcher interface {
	SearchOpinions(ctx context.Context, query string, opts courtlistener.SearchOptions) ([]model.CaseReference, error)
}

// StatuteSearcher is the slice of the Congress.gov client the fetcher uses.
type StatuteSearcher interface {
	SearchBills(ctx context.Context, query string, opts congress.SearchOptions) ([]model.StatuteReference, error)
}

// LandmarkIndex is the curated landmark case lookup.
type LandmarkIndex interface {
	SearchByTopic(topic string, maxResults int) []model.CaseReference
}

// Service turns identified names into real records from the databases.
type Service struct {
	cfg       *config.Config
	cases     CaseSearcher
	statutes  StatuteSearcher
	landmarks LandmarkIndex
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:       do.MustInvoke[*config.Config](di),
		cases:     do.MustInvoke[*courtlistener.Client](di),
		statutes:  do.MustInvoke[*congress.Client](di),
		landmarks: do.MustInvoke[*scotus.Client](di),
	}, nil
}

// Fetch looks everything up in parallel and merges the results.
// Individual lookup failures are logged and skipped: a partial answer
// beats no answer, and the synthesizer flags what is missing.
func (s *Service) Fetch(ctx context.Context, targets model.Targets) *model.Evidence {
	evidence := &model.Evidence{IdentifiedStatutes: targets.Statutes}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Research.FetchWorkers)

	for _, name := range targets.Cases {
		g.Go(func() error {
			found, err := s.fetchCase(gctx, name)
			if err != nil {
				slog.Warn("Case lookup failed", "case", name, "error", err)
				return nil
			}
			if found == nil {
				return nil
			}

			mu.Lock()
			evidence.Cases = append(evidence.Cases, *found)
			mu.Unlock()
			return nil
		})
	}

	for _, statute := range targets.Statutes {
		g.Go(func() error {
			found, err := s.fetchStatute(gctx, statute)
			if err != nil {
				slog.Warn("Statute lookup failed", "statute", statute, "error", err)
				return nil
			}
			if found == nil {
				return nil
			}

			mu.Lock()
			evidence.Statutes = append(evidence.Statutes, *found)
			mu.Unlock()
			return nil
		})
	}

	for _, query := range targets.SearchQueries {
		g.Go(func() error {
			results, err := s.cases.SearchOpinions(gctx, query, courtlistener.SearchOptions{
				MaxResults: s.cfg.Research.QueryResults,
			})
			if err != nil {
				slog.Warn("Broad search failed", "query", query, "error", err)
				return nil
			}

			mu.Lock()
			evidence.Cases = append(evidence.Cases, results...)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	evidence.Cases = dedupe(evidence.Cases)

	for _, name := range targets.Cases {
		landmarkCase, ok := s.checkLandmark(name)
		if ok && !alreadyHave(landmarkCase, evidence.Cases) {
			evidence.Cases = append(evidence.Cases, landmarkCase)
		}
	}

	rank(evidence.Cases)

	return evidence
}

// fetchCase searches CourtListener by case name, quoted first for an
// exact phrase hit, then loose.
func (s *Service) fetchCase(ctx context.Context, caseName string) (*model.CaseReference, error) {
	opts := courtlistener.SearchOptions{MaxResults: s.cfg.Research.CaseResults}

	results, err := s.cases.SearchOpinions(ctx, fmt.Sprintf("%q", caseName), opts)
	if err != nil {
		return nil, err
	}
	if best, ok := bestMatch(caseName, results); ok {
		return &best, nil
	}

	results, err = s.cases.SearchOpinions(ctx, caseName, opts)
	if err != nil {
		return nil, err
	}
	if best, ok := bestMatch(caseName, results); ok {
		return &best, nil
	}

	return nil, nil
}

func (s *Service) fetchStatute(ctx context.Context, statuteName string) (*model.StatuteReference, error) {
	// Citation symbols confuse the keyword search.
	searchTerm := strings.TrimSpace(strings.NewReplacer("§", "", "U.S.C.", "").Replace(statuteName))

	results, err := s.statutes.SearchBills(ctx, searchTerm, congress.SearchOptions{
		MaxResults: s.cfg.Research.CaseResults,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	return &results[0], nil
}

func (s *Service) checkLandmark(caseName string) (model.CaseReference, bool) {
	nameLower := strings.ToLower(caseName)

	for _, candidate := range s.landmarks.SearchByTopic(nameLower, s.cfg.Research.CaseResults) {
		if namesMatch(nameLower, strings.ToLower(candidate.CaseName)) {
			return candidate, true
		}
	}

	return model.CaseReference{}, false
}

// rank orders cases by court level, then most recent first.
func rank(cases []model.CaseReference) {
	sort.SliceStable(cases, func(i, j int) bool {
		ri, rj := courtRank(cases[i]), courtRank(cases[j])
		if ri != rj {
			return ri < rj
		}
		return cases[i].DateFiled > cases[j].DateFiled
	})
}
