package model

// Source tags for fetched references.
const (
	SourceCourtListener = "courtlistener"
	SourceCongress      = "congress_gov"
	SourceLandmark      = "scotus_landmark"
)

// CaseReference is a single court decision as returned by one of the
// data sources. Fields are best-effort: search results carry different
// subsets depending on the source.
type CaseReference struct {
	Source         string  `json:"source"`
	CaseName       string  `json:"case_name"`
	Citation       string  `json:"citation"`
	Court          string  `json:"court,omitempty"`
	CourtCitation  string  `json:"court_citation_string,omitempty"`
	DateFiled      string  `json:"date_filed,omitempty"`
	Snippet        string  `json:"snippet,omitempty"`
	Judges         string  `json:"judges,omitempty"`
	OpinionID      int64   `json:"opinion_id,omitempty"`
	ClusterID      int64   `json:"cluster_id,omitempty"`
	AbsoluteURL    string  `json:"absolute_url,omitempty"`
	Status         string  `json:"status,omitempty"`
	RelevanceScore float64 `json:"relevance_score,omitempty"`
	Landmark       bool    `json:"is_landmark,omitempty"`
	Topic          string  `json:"topic,omitempty"`
}

// StatuteReference is a bill or statute from Congress.gov.
type StatuteReference struct {
	Source           string   `json:"source"`
	Title            string   `json:"title"`
	Number           string   `json:"number,omitempty"`
	Type             string   `json:"type,omitempty"`
	Congress         int64    `json:"congress,omitempty"`
	IntroducedDate   string   `json:"introduced_date,omitempty"`
	LatestAction     string   `json:"latest_action,omitempty"`
	LatestActionDate string   `json:"latest_action_date,omitempty"`
	PolicyArea       string   `json:"policy_area,omitempty"`
	Sponsors         []string `json:"sponsors,omitempty"`
	URL              string   `json:"url,omitempty"`
}

// Targets is what the identifier asks the databases to look up.
type Targets struct {
	Cases         []string `json:"cases"`
	Statutes      []string `json:"statutes"`
	SearchQueries []string `json:"search_queries"`
}

func (t Targets) Empty() bool {
	return len(t.Cases) == 0 && len(t.Statutes) == 0
}

// Evidence is the merged output of the fetch stage.
// IdentifiedStatutes carries the statute names from the identifier so
// the synthesizer can flag the ones the database search did not cover.
type Evidence struct {
	Cases              []CaseReference
	Statutes           []StatuteReference
	IdentifiedStatutes []string
}

// Memo is the final synthesized research answer.
type Memo struct {
	TLDR     string `json:"tldr"`
	KeyCases string `json:"key_cases"`
	Statutes string `json:"statutes"`
	Answer   string `json:"answer"`
	Gaps     string `json:"gaps"`
}
