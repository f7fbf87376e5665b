package synthesizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMemo(t *testing.T) {
	memo := parseMemo(`## TLDR
Yes, but the bar is high.

## KEY CASES
- Harlow v. Fitzgerald, 457 U.S. 800 (1982)
- Pearson v. Callahan, 555 U.S. 223 (2009)

## RELEVANT STATUTES
- 42 U.S.C. § 1983

## ANSWER
Qualified immunity shields officials unless clearly established law was violated.

## GAPS
- No circuit-level authority was retrieved.`)

	assert.Equal(t, "Yes, but the bar is high.", memo.TLDR)
	assert.Contains(t, memo.KeyCases, "Harlow v. Fitzgerald")
	assert.Contains(t, memo.KeyCases, "Pearson v. Callahan")
	assert.Contains(t, memo.Statutes, "1983")
	assert.Contains(t, memo.Answer, "clearly established")
	assert.Contains(t, memo.Gaps, "circuit-level")
}

func TestParseMemoPlainHeaders(t *testing.T) {
	memo := parseMemo(`TLDR
Short answer.
ANSWER
Long answer.`)

	assert.Equal(t, "Short answer.", memo.TLDR)
	assert.Equal(t, "Long answer.", memo.Answer)
	assert.Empty(t, memo.KeyCases)
}

func TestParseMemoHeaderWithSuffix(t *testing.T) {
	memo := parseMemo(`### TLDR:
Done.
### Answer (detailed)
Body.`)

	assert.Equal(t, "Done.", memo.TLDR)
	assert.Equal(t, "Body.", memo.Answer)
}

func TestParseMemoNoHeaders(t *testing.T) {
	text := "The model ignored the format and just wrote prose."

	memo := parseMemo(text)

	assert.Equal(t, text, memo.Answer)
	assert.Empty(t, memo.TLDR)
}

func TestParseMemoIgnoresPreamble(t *testing.T) {
	memo := parseMemo(`Here is the memo you requested.

## TLDR
Summary.`)

	assert.Equal(t, "Summary.", memo.TLDR)
	assert.NotContains(t, memo.TLDR, "requested")
}
