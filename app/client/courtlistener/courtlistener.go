package courtlistener

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"conlaw/app/config"
	"conlaw/app/model"

	"github.com/avast/retry-go/v4"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tidwall/gjson"
)

const (
	userAgent      = "conlaw/1.0"
	requestTimeout = 30 * time.Second
	maxAttempts    = 3
)

// Federal courts searched by default for constitutional questions.
var federalCourts = []string{
	"scotus",
	"ca1", "ca2", "ca3", "ca4", "ca5", "ca6",
	"ca7", "ca8", "ca9", "ca10", "ca11", "cadc", "cafc",
}

// Client talks to the Free Law Project's CourtListener REST API.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c.cfg.CourtListener.Token != ""
}

type SearchOptions struct {
	// Court filter, e.g. "scotus" or "ca9". Empty means all federal courts.
	Court string
	// Filed date filters, YYYY-MM-DD
	FiledAfter  string
	FiledBefore string
	MaxResults  int
}

// SearchOpinions runs a full-text opinion search.
func (c *Client) SearchOpinions(ctx context.Context, query string, opts SearchOptions) ([]model.CaseReference, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "o")
	params.Set("order_by", "score desc")
	params.Set("format", "json")

	if opts.Court != "" {
		params.Set("court", opts.Court)
	} else {
		params.Set("court", strings.Join(federalCourts, " "))
	}
	if opts.FiledAfter != "" {
		params.Set("filed_after", opts.FiledAfter)
	}
	if opts.FiledBefore != "" {
		params.Set("filed_before", opts.FiledBefore)
	}

	body, err := c.get(ctx, c.cfg.CourtListener.BaseURL+"/search/?"+params.Encode())
	if err != nil {
		return nil, oops.Errorf("courtlistener search failed: %w", err)
	}

	var results []model.CaseReference
	for _, item := range gjson.GetBytes(body, "results").Array() {
		if len(results) >= maxResults {
			break
		}
		results = append(results, parseSearchResult(item))
	}

	return results, nil
}

// Opinion is a single full opinion text.
type Opinion struct {
	ID        int64
	HTML      string
	PlainText string
	Type      string
	Author    string
	PerCuriam bool
}

// GetOpinion fetches the full text of one opinion.
func (c *Client) GetOpinion(ctx context.Context, opinionID int64) (*Opinion, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/opinions/%d/", c.cfg.CourtListener.BaseURL, opinionID))
	if err != nil {
		return nil, oops.Errorf("courtlistener opinion fetch failed: %w", err)
	}

	data := gjson.ParseBytes(body)

	html := data.Get("html_with_citations").String()
	if html == "" {
		html = data.Get("html").String()
	}

	return &Opinion{
		ID:        data.Get("id").Int(),
		HTML:      html,
		PlainText: data.Get("plain_text").String(),
		Type:      data.Get("type").String(),
		Author:    data.Get("author_str").String(),
		PerCuriam: data.Get("per_curiam").Bool(),
	}, nil
}

// Cluster groups all opinions filed for a single case.
type Cluster struct {
	ID                 int64
	CaseName           string
	DateFiled          string
	Court              string
	Citations          []string
	Judges             string
	PrecedentialStatus string
	Syllabus           string
}

// GetCluster fetches case-level metadata.
func (c *Client) GetCluster(ctx context.Context, clusterID int64) (*Cluster, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/clusters/%d/", c.cfg.CourtListener.BaseURL, clusterID))
	if err != nil {
		return nil, oops.Errorf("courtlistener cluster fetch failed: %w", err)
	}

	data := gjson.ParseBytes(body)

	var citations []string
	for _, cit := range data.Get("citations").Array() {
		if s := cit.String(); s != "" {
			citations = append(citations, s)
		}
	}

	return &Cluster{
		ID:                 data.Get("id").Int(),
		CaseName:           data.Get("case_name").String(),
		DateFiled:          data.Get("date_filed").String(),
		Court:              data.Get("court").String(),
		Citations:          citations,
		Judges:             data.Get("judges").String(),
		PrecedentialStatus: data.Get("precedential_status").String(),
		Syllabus:           data.Get("syllabus").String(),
	}, nil
}

// CitationMatch is one resolved citation from the lookup endpoint.
type CitationMatch struct {
	Citation   string
	Normalized []string
	ClusterIDs []int64
}

// LookupCitations resolves the legal citations found in free text.
func (c *Client) LookupCitations(ctx context.Context, text string) ([]CitationMatch, error) {
	form := url.Values{}
	form.Set("text", text)

	var body []byte
	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.cfg.CourtListener.BaseURL+"/citation-lookup/", strings.NewReader(form.Encode()))
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c.setHeaders(req)

		data, err := c.do(req)
		if err != nil {
			return err
		}
		body = data
		return nil
	}, retry.Attempts(maxAttempts), retry.LastErrorOnly(true), retry.Context(ctx))
	if err != nil {
		return nil, oops.Errorf("courtlistener citation lookup failed: %w", err)
	}

	var matches []CitationMatch
	for _, item := range gjson.ParseBytes(body).Array() {
		if item.Get("status").Int() != http.StatusOK || len(item.Get("clusters").Array()) == 0 {
			continue
		}

		match := CitationMatch{Citation: item.Get("citation").String()}
		for _, n := range item.Get("normalized_citations").Array() {
			match.Normalized = append(match.Normalized, n.String())
		}
		for _, cl := range item.Get("clusters").Array() {
			match.ClusterIDs = append(match.ClusterIDs, cl.Get("id").Int())
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		c.setHeaders(req)

		data, err := c.do(req)
		if err != nil {
			return err
		}
		body = data
		return nil
	}, retry.Attempts(maxAttempts), retry.LastErrorOnly(true), retry.Context(ctx))

	return body, err
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	if c.cfg.CourtListener.Token != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.CourtListener.Token)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return data, nil
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("courtlistener http %d", resp.StatusCode)
	default:
		return nil, retry.Unrecoverable(fmt.Errorf("courtlistener http %d", resp.StatusCode))
	}
}

// parseSearchResult normalizes one search hit. Field names vary between
// API versions (caseName vs case_name), so everything is best-effort.
func parseSearchResult(item gjson.Result) model.CaseReference {
	caseName := item.Get("caseName").String()
	if caseName == "" {
		caseName = item.Get("case_name").String()
	}
	if caseName == "" {
		caseName = "Unknown"
	}

	dateFiled := item.Get("dateFiled").String()
	if dateFiled == "" {
		dateFiled = item.Get("date_filed").String()
	}

	court := item.Get("court").String()
	if court == "" {
		court = item.Get("court_id").String()
	}

	return model.CaseReference{
		Source:         model.SourceCourtListener,
		CaseName:       caseName,
		DateFiled:      dateFiled,
		Court:          court,
		CourtCitation:  item.Get("court_citation_string").String(),
		Citation:       extractCitation(item),
		Snippet:        item.Get("snippet").String(),
		Judges:         item.Get("judge").String(),
		OpinionID:      item.Get("id").Int(),
		ClusterID:      extractClusterID(item),
		AbsoluteURL:    item.Get("absolute_url").String(),
		Status:         item.Get("status").String(),
		RelevanceScore: item.Get("score").Float(),
	}
}

// extractClusterID handles both the integer id and the resource URL form.
func extractClusterID(item gjson.Result) int64 {
	v := item.Get("cluster_id")
	if !v.Exists() {
		v = item.Get("cluster")
	}

	if v.Type == gjson.String {
		parts := strings.Split(strings.Trim(v.String(), "/"), "/")
		if len(parts) == 0 {
			return 0
		}
		id, _ := strconv.ParseInt(parts[len(parts)-1], 10, 64)
		return id
	}

	return v.Int()
}

func extractCitation(item gjson.Result) string {
	citation := item.Get("citation")
	if citation.IsArray() {
		if arr := citation.Array(); len(arr) > 0 {
			return arr[0].String()
		}
	} else if citation.String() != "" {
		return citation.String()
	}

	for _, field := range []string{"lexisCite", "neutralCite", "suitNature"} {
		if val := item.Get(field).String(); val != "" {
			return val
		}
	}

	name := item.Get("caseName").String()
	if name == "" {
		return "Citation unavailable"
	}

	court := item.Get("court_citation_string").String()
	date := item.Get("dateFiled").String()
	if court != "" && len(date) >= 4 {
		return fmt.Sprintf("%s (%s %s)", name, court, date[:4])
	}

	return name
}
