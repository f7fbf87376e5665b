package research

import (
	"context"
	"errors"
	"fmt"

	"conlaw/app/config"
	"conlaw/app/model"
	"conlaw/app/service/fetcher"
	"conlaw/app/service/identifier"
	"conlaw/app/service/output"
	"conlaw/app/service/synthesizer"

	"github.com/samber/do"
)

// ErrNoTargets means the model could not name any case or statute to
// look up; the question probably needs rephrasing.
var ErrNoTargets = errors.New("no cases or statutes identified")

// Identifier names the authorities to look up.
type Identifier interface {
	Identify(ctx context.Context, question string) model.Targets
}

// Fetcher retrieves real records for the identified authorities.
type Fetcher interface {
	Fetch(ctx context.Context, targets model.Targets) *model.Evidence
}

// Synthesizer writes the final memo from fetched evidence.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, evidence *model.Evidence) model.Memo
}

// Saver persists one finished run.
type Saver interface {
	Save(question string, memo model.Memo) (string, error)
}

// Service runs the identify → fetch → synthesize pipeline.
type Service struct {
	cfg         *config.Config
	identifier  Identifier
	fetcher     Fetcher
	synthesizer Synthesizer
	saver       Saver

	// Per-stage progress callback for the prompt loop; may be nil.
	OnStage func(stage string)
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:         do.MustInvoke[*config.Config](di),
		identifier:  do.MustInvoke[*identifier.Service](di),
		fetcher:     do.MustInvoke[*fetcher.Service](di),
		synthesizer: do.MustInvoke[*synthesizer.Service](di),
		saver:       do.MustInvoke[*output.Service](di),
	}, nil
}

// Result is one completed research run.
type Result struct {
	Question   string
	Targets    model.Targets
	Evidence   *model.Evidence
	Memo       model.Memo
	OutputPath string
}

func (s *Service) Run(ctx context.Context, question string) (*Result, error) {
	s.stage("identify")
	targets := s.identifier.Identify(ctx, question)
	if targets.Empty() {
		return nil, ErrNoTargets
	}

	s.stage("fetch")
	evidence := s.fetcher.Fetch(ctx, targets)

	s.stage("synthesize")
	memo := s.synthesizer.Synthesize(ctx, question, evidence)

	path, err := s.saver.Save(question, memo)
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	return &Result{
		Question:   question,
		Targets:    targets,
		Evidence:   evidence,
		Memo:       memo,
		OutputPath: path,
	}, nil
}

func (s *Service) stage(name string) {
	if s.OnStage != nil {
		s.OnStage(name)
	}
}
