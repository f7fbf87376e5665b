package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"conlaw/app/client/congress"
	"conlaw/app/client/courtlistener"
	"conlaw/app/client/gemini"
	"conlaw/app/config"
	"conlaw/app/service/research"

	"github.com/samber/do"
)

// Service is the interactive prompt loop.
type Service struct {
	cfg         *config.Config
	gemini      *gemini.Client
	cl          *courtlistener.Client
	congress    *congress.Client
	researchSvc *research.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:         do.MustInvoke[*config.Config](di),
		gemini:      do.MustInvoke[*gemini.Client](di),
		cl:          do.MustInvoke[*courtlistener.Client](di),
		congress:    do.MustInvoke[*congress.Client](di),
		researchSvc: do.MustInvoke[*research.Service](di),
	}, nil
}

// Run reads questions until EOF, quit, or context cancellation.
func (s *Service) Run(ctx context.Context) error {
	s.printBanner()

	if err := s.checkKeys(); err != nil {
		return err
	}

	lines := make(chan string)
	scanner := bufio.NewScanner(os.Stdin)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Println()
		fmt.Println(promptStyle.Render("  Ask a legal question (or 'quit'):"))
		fmt.Print("  > ")

		var question string
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return nil
			}
			question = strings.TrimSpace(line)
		}

		if question == "" {
			continue
		}

		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			fmt.Println()
			fmt.Println(dimStyle.Render("  Goodbye!"))
			fmt.Println()
			return nil
		}

		s.runQuestion(ctx, question)
	}
}

func (s *Service) runQuestion(ctx context.Context, question string) {
	stages := map[string]string{
		"identify":   "[1/3] Asking the model to identify relevant cases...",
		"fetch":      "[2/3] Fetching from CourtListener, SCOTUS, Congress.gov...",
		"synthesize": "[3/3] Synthesizing answer...",
	}
	s.researchSvc.OnStage = func(stage string) {
		fmt.Println()
		fmt.Println(dimStyle.Render("  " + stages[stage]))
	}

	result, err := s.researchSvc.Run(ctx, question)
	if err != nil {
		if errors.Is(err, research.ErrNoTargets) {
			fmt.Println(warnStyle.Render("  The model couldn't identify specific cases. Try rephrasing."))
			return
		}

		slog.Error("Research run failed", "question", question, "error", err)
		fmt.Println(warnStyle.Render("  Research failed: " + err.Error()))
		return
	}

	if n := len(result.Targets.Cases); n > 0 {
		fmt.Println(goodStyle.Render(fmt.Sprintf("Identified %d cases to research", n)))
	}
	if n := len(result.Targets.Statutes); n > 0 {
		fmt.Println(goodStyle.Render(fmt.Sprintf("Identified %d statutes to research", n)))
	}
	fmt.Println(goodStyle.Render(fmt.Sprintf("Retrieved: %d cases, %d statutes",
		len(result.Evidence.Cases), len(result.Evidence.Statutes))))

	fmt.Println()
	fmt.Println(dimStyle.Render("  Saved: " + result.OutputPath))

	s.printMemo(result.Memo)
}

// checkKeys warns about missing data-source keys and refuses to start
// without the model key, which nothing can degrade around.
func (s *Service) checkKeys() error {
	var missing []string
	if !s.gemini.IsConfigured() {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if !s.cl.IsConfigured() {
		missing = append(missing, "COURTLISTENER_API_TOKEN")
	}
	if !s.congress.IsConfigured() {
		missing = append(missing, "CONGRESS_API_KEY")
	}

	if len(missing) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("  ⚠ Missing: " + strings.Join(missing, ", ")))
		fmt.Println(warnStyle.Render("  Add them to .env (see .env.example)"))
	}

	if !s.gemini.IsConfigured() {
		return errors.New("GEMINI_API_KEY is required for this tool to work")
	}

	return nil
}
