package fetcher

import (
	"regexp"
	"strings"

	"conlaw/app/model"
)

const dedupeKeyLen = 60

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9 ]`)

// normalizeCaseName reduces a case name to a comparable form:
// lowercase, "v."/"vs." collapsed to "v", punctuation removed.
func normalizeCaseName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, " vs. ", " v ")
	n = strings.ReplaceAll(n, " v. ", " v ")
	n = nonAlnumRe.ReplaceAllString(n, "")
	return strings.Join(strings.Fields(n), " ")
}

// namesMatch reports whether two case names refer to the same case:
// either one contains the other, or both party names share a prefix.
func namesMatch(name1, name2 string) bool {
	n1 := normalizeCaseName(name1)
	n2 := normalizeCaseName(name2)

	if n1 == "" || n2 == "" {
		return false
	}

	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	parts1 := strings.Split(n1, " v ")
	parts2 := strings.Split(n2, " v ")
	if len(parts1) == 2 && len(parts2) == 2 {
		return partyPrefix(parts1[0]) == partyPrefix(parts2[0]) &&
			partyPrefix(parts1[1]) == partyPrefix(parts2[1])
	}

	return false
}

func partyPrefix(party string) string {
	party = strings.TrimSpace(party)
	if len(party) > 6 {
		party = party[:6]
	}
	return party
}

// bestMatch picks the search result that most plausibly is the named
// case: exact name match first, then both parties appearing, then the
// top-ranked result.
func bestMatch(targetName string, results []model.CaseReference) (model.CaseReference, bool) {
	if len(results) == 0 {
		return model.CaseReference{}, false
	}

	for _, r := range results {
		if namesMatch(targetName, r.CaseName) {
			return r, true
		}
	}

	target := strings.ToLower(strings.TrimSpace(targetName))
	parts := regexp.MustCompile(`\s+v\.?\s+`).Split(target, -1)
	if len(parts) == 2 {
		left := partyPrefix8(parts[0])
		right := partyPrefix8(parts[1])
		for _, r := range results {
			name := strings.ToLower(r.CaseName)
			if strings.Contains(name, left) && strings.Contains(name, right) {
				return r, true
			}
		}
	}

	return results[0], true
}

func partyPrefix8(party string) string {
	party = strings.TrimSpace(party)
	if len(party) > 8 {
		party = party[:8]
	}
	return party
}

// dedupe drops repeat cases keyed by normalized name.
func dedupe(cases []model.CaseReference) []model.CaseReference {
	seen := make(map[string]bool, len(cases))

	var unique []model.CaseReference
	for _, c := range cases {
		key := normalizeCaseName(c.CaseName)
		if len(key) > dedupeKeyLen {
			key = key[:dedupeKeyLen]
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	return unique
}

func alreadyHave(candidate model.CaseReference, existing []model.CaseReference) bool {
	for _, e := range existing {
		if namesMatch(candidate.CaseName, e.CaseName) {
			return true
		}
	}
	return false
}

var circuitRe = regexp.MustCompile(`^ca(\d+|dc|fc)$`)

// courtRank orders courts for ranking: the Supreme Court and landmark
// entries first, circuit courts second, everything else last.
func courtRank(c model.CaseReference) int {
	if c.Landmark {
		return 0
	}

	court := strings.ToLower(c.Court + " " + c.CourtCitation)
	switch {
	case strings.Contains(court, "scotus") || strings.Contains(court, "supreme court"):
		return 0
	case circuitRe.MatchString(strings.ToLower(strings.TrimSpace(c.Court))) ||
		strings.Contains(court, "circuit") || strings.Contains(court, "court of appeals"):
		return 1
	default:
		return 2
	}
}
