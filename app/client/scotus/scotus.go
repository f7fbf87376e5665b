package scotus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"conlaw/app/model"

	"github.com/samber/do"
	"github.com/samber/oops"
)

const (
	baseURL        = "https://www.supremecourt.gov"
	userAgent      = "conlaw/1.0"
	requestTimeout = 30 * time.Second
	maxPageLinks   = 10
)

var (
	opinionLinkRe  = regexp.MustCompile(`href="(/opinions/\d+pdf/[^"]+)"`)
	argumentLinkRe = regexp.MustCompile(`href="(/oral_arguments/audio/\d+/[^"]+)"`)
)

// Client pulls slip opinions and oral argument listings from
// supremecourt.gov, which publishes HTML pages rather than an API.
// The curated landmark table in landmarks.go backs topic search.
type Client struct {
	httpClient *http.Client
	base       string
}

func NewClient(_ *do.Injector) (*Client, error) {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		base: baseURL,
	}, nil
}

// SlipOpinion is a link to one published slip opinion PDF.
type SlipOpinion struct {
	Term   string
	PDFURL string
}

// RecentOpinions lists slip opinions for a term. An empty term means
// the current term, which starts each October.
func (c *Client) RecentOpinions(ctx context.Context, term string) ([]SlipOpinion, error) {
	if term == "" {
		term = currentTerm(time.Now())
	}

	html, err := c.get(ctx, fmt.Sprintf("%s/opinions/slipopinion/%s", c.base, term))
	if err != nil {
		return nil, oops.Errorf("scotus opinions fetch failed: %w", err)
	}

	var opinions []SlipOpinion
	for _, match := range opinionLinkRe.FindAllStringSubmatch(html, maxPageLinks) {
		opinions = append(opinions, SlipOpinion{
			Term:   term,
			PDFURL: c.base + match[1],
		})
	}

	return opinions, nil
}

// OralArgument is a link to one argument audio recording.
type OralArgument struct {
	Term     string
	AudioURL string
}

// OralArguments lists argument audio for a term.
func (c *Client) OralArguments(ctx context.Context, term string) ([]OralArgument, error) {
	if term == "" {
		term = currentTerm(time.Now())
	}

	html, err := c.get(ctx, fmt.Sprintf("%s/oral_arguments/argument_audio/%s", c.base, term))
	if err != nil {
		return nil, oops.Errorf("scotus oral arguments fetch failed: %w", err)
	}

	var arguments []OralArgument
	for _, match := range argumentLinkRe.FindAllStringSubmatch(html, maxPageLinks) {
		arguments = append(arguments, OralArgument{
			Term:     term,
			AudioURL: c.base + match[1],
		})
	}

	return arguments, nil
}

// SearchByTopic returns landmark cases whose topic keyword appears in
// the query. supremecourt.gov has no search API, so this is backed by
// the curated table.
func (c *Client) SearchByTopic(topic string, maxResults int) []model.CaseReference {
	if maxResults <= 0 {
		maxResults = 5
	}

	topicLower := strings.ToLower(topic)

	var relevant []model.CaseReference
	for keyword, cases := range landmarkCases {
		if !strings.Contains(topicLower, keyword) {
			continue
		}
		relevant = append(relevant, cases...)
	}

	if len(relevant) > maxResults {
		relevant = relevant[:maxResults]
	}

	return relevant
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("supremecourt.gov http %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// currentTerm maps a date onto the October-anchored SCOTUS term year.
func currentTerm(now time.Time) string {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d", year)
}
