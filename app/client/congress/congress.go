package congress

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
	apiPageLimit   = 250
)

// Recent congresses scanned by topic searches, newest first.
var recentCongresses = []int{118, 117, 116}

// Client talks to the Library of Congress api.congress.gov API.
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
	return c.cfg.Congress.APIKey != ""
}

type SearchOptions struct {
	// Congress number, e.g. 118. Zero searches all congresses.
	Congress   int
	MaxResults int
}

// SearchBills searches legislation by keyword.
func (c *Client) SearchBills(ctx context.Context, query string, opts SearchOptions) ([]model.StatuteReference, error) {
	if !c.IsConfigured() {
		return nil, nil
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("api_key", c.cfg.Congress.APIKey)
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(min(maxResults, apiPageLimit)))
	params.Set("format", "json")
	params.Set("sort", "relevance")

	endpoint := c.cfg.Congress.BaseURL + "/bill"
	if opts.Congress > 0 {
		endpoint = fmt.Sprintf("%s/bill/%d", c.cfg.Congress.BaseURL, opts.Congress)
	}

	body, err := c.get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, oops.Errorf("congress.gov search failed: %w", err)
	}

	var results []model.StatuteReference
	for _, bill := range gjson.GetBytes(body, "bills").Array() {
		if len(results) >= maxResults {
			break
		}
		results = append(results, parseBill(bill))
	}

	return results, nil
}

// GetBillDetails fetches one bill's metadata.
func (c *Client) GetBillDetails(ctx context.Context, congressNum int, billType string, billNumber int) (*model.StatuteReference, error) {
	if !c.IsConfigured() {
		return nil, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/bill/%d/%s/%d?%s",
		c.cfg.Congress.BaseURL, congressNum, billType, billNumber, c.keyParams()))
	if err != nil {
		return nil, oops.Errorf("congress.gov bill details failed: %w", err)
	}

	bill := gjson.GetBytes(body, "bill")

	var sponsors []string
	for _, s := range bill.Get("sponsors").Array() {
		if name := s.Get("fullName").String(); name != "" {
			sponsors = append(sponsors, name)
		}
	}

	return &model.StatuteReference{
		Source:           model.SourceCongress,
		Title:            bill.Get("title").String(),
		Number:           fmt.Sprintf("%s %d", strings.ToUpper(billType), billNumber),
		Congress:         int64(congressNum),
		IntroducedDate:   bill.Get("introducedDate").String(),
		LatestAction:     bill.Get("latestAction.text").String(),
		LatestActionDate: bill.Get("latestAction.actionDate").String(),
		PolicyArea:       bill.Get("policyArea.name").String(),
		Sponsors:         sponsors,
		URL:              bill.Get("url").String(),
	}, nil
}

// GetBillText fetches the latest formatted text of a bill, if any.
func (c *Client) GetBillText(ctx context.Context, congressNum int, billType string, billNumber int) (string, error) {
	if !c.IsConfigured() {
		return "", nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/bill/%d/%s/%d/text?%s",
		c.cfg.Congress.BaseURL, congressNum, billType, billNumber, c.keyParams()))
	if err != nil {
		return "", oops.Errorf("congress.gov bill text failed: %w", err)
	}

	versions := gjson.GetBytes(body, "textVersions").Array()
	if len(versions) == 0 {
		return "", nil
	}

	// Text versions are newest first.
	for _, format := range versions[0].Get("formats").Array() {
		if format.Get("type").String() != "Formatted Text" {
			continue
		}
		textURL := format.Get("url").String()
		if textURL == "" {
			continue
		}

		text, err := c.get(ctx, textURL)
		if err != nil {
			return "", oops.Errorf("congress.gov text download failed: %w", err)
		}
		return string(text), nil
	}

	return "", nil
}

// BillAction is one step of a bill's legislative history.
type BillAction struct {
	Date    string
	Text    string
	Type    string
	Chamber string
}

// GetBillActions fetches a bill's legislative timeline.
func (c *Client) GetBillActions(ctx context.Context, congressNum int, billType string, billNumber int) ([]BillAction, error) {
	if !c.IsConfigured() {
		return nil, nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/bill/%d/%s/%d/actions?%s",
		c.cfg.Congress.BaseURL, congressNum, billType, billNumber, c.keyParams()))
	if err != nil {
		return nil, oops.Errorf("congress.gov bill actions failed: %w", err)
	}

	var actions []BillAction
	for _, action := range gjson.GetBytes(body, "actions").Array() {
		actions = append(actions, BillAction{
			Date:    action.Get("actionDate").String(),
			Text:    action.Get("text").String(),
			Type:    action.Get("type").String(),
			Chamber: action.Get("actionCode").String(),
		})
	}

	return actions, nil
}

// SearchStatutesByTopic scans recent congresses for legislation on a topic.
func (c *Client) SearchStatutesByTopic(ctx context.Context, topic string, maxResults int) ([]model.StatuteReference, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	var all []model.StatuteReference
	for _, congressNum := range recentCongresses {
		results, err := c.SearchBills(ctx, topic, SearchOptions{Congress: congressNum, MaxResults: maxResults})
		if err != nil {
			return nil, err
		}

		all = append(all, results...)
		if len(all) >= maxResults {
			break
		}
	}

	if len(all) > maxResults {
		all = all[:maxResults]
	}

	return all, nil
}

func (c *Client) keyParams() string {
	params := url.Values{}
	params.Set("api_key", c.cfg.Congress.APIKey)
	params.Set("format", "json")
	return params.Encode()
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte

	err := retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			body = data
			return nil
		case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("congress.gov http %d", resp.StatusCode)
		default:
			return retry.Unrecoverable(fmt.Errorf("congress.gov http %d", resp.StatusCode))
		}
	}, retry.Attempts(maxAttempts), retry.LastErrorOnly(true), retry.Context(ctx))

	return body, err
}

func parseBill(bill gjson.Result) model.StatuteReference {
	return model.StatuteReference{
		Source:           model.SourceCongress,
		Title:            bill.Get("title").String(),
		Number:           bill.Get("number").String(),
		Type:             bill.Get("type").String(),
		Congress:         bill.Get("congress").Int(),
		IntroducedDate:   bill.Get("introducedDate").String(),
		LatestAction:     bill.Get("latestAction.text").String(),
		LatestActionDate: bill.Get("latestAction.actionDate").String(),
		PolicyArea:       bill.Get("policyArea.name").String(),
		URL:              bill.Get("url").String(),
	}
}
