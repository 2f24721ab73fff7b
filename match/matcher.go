package match

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Policy selects where in a title a query token may match.
type Policy int

const (
	// PolicyWordPrefix matches a token only at the start of a word.
	PolicyWordPrefix Policy = iota
	// PolicySubstring matches a token anywhere in the title.
	PolicySubstring
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyWordPrefix:
		return "word-prefix"
	case PolicySubstring:
		return "substring"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name as written in configuration.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "word-prefix", "prefix":
		return PolicyWordPrefix, nil
	case "substring", "contains":
		return PolicySubstring, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// EmptyQuery decides what a query without tokens matches.
type EmptyQuery int

const (
	// EmptyQueryMatchAll makes a blank query match every title.
	EmptyQueryMatchAll EmptyQuery = iota
	// EmptyQueryMatchNone makes a blank query match nothing.
	EmptyQueryMatchNone
)

// ParseEmptyQuery parses "all" or "none".
func ParseEmptyQuery(s string) (EmptyQuery, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return EmptyQueryMatchAll, nil
	case "none":
		return EmptyQueryMatchNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEmptyQuery, s)
	}
}

// Options configures the matcher behavior.
type Options struct {
	// Policy is the token boundary rule.
	// Default is PolicyWordPrefix.
	Policy Policy

	// Language drives locale-specific lowercasing (e.g. Turkish dotted I).
	// Default is language.Und.
	Language language.Tag

	// EmptyQuery decides the result of a query with no tokens.
	// Default is EmptyQueryMatchAll.
	EmptyQuery EmptyQuery
}

// DefaultOptions returns the default matcher options.
func DefaultOptions() Options {
	return Options{
		Policy:     PolicyWordPrefix,
		Language:   language.Und,
		EmptyQuery: EmptyQueryMatchAll,
	}
}

// Query is a normalized search query.
type Query struct {
	// Text is the query after normalization and lowercasing.
	Text string

	// Tokens are the whitespace-delimited parts of Text.
	Tokens []string
}

// IsEmpty reports whether the query has no tokens.
func (q Query) IsEmpty() bool {
	return len(q.Tokens) == 0
}

// Matcher decides whether an app title matches a query.
// A Matcher is safe for concurrent use.
type Matcher struct {
	options Options
	casers  sync.Pool // *cases.Caser; a Caser is not safe for concurrent use
}

// NewMatcher creates a matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	m := &Matcher{options: opts}
	tag := opts.Language
	m.casers.New = func() any {
		c := cases.Lower(tag)
		return &c
	}
	return m
}

// Options returns the options the matcher was built with.
func (m *Matcher) Options() Options {
	return m.options
}

// Normalize prepares a raw query for matching.
// Call it once per query, not once per candidate.
func (m *Matcher) Normalize(query string) Query {
	text := m.lower(clean(query))
	return Query{
		Text:   text,
		Tokens: strings.Fields(text),
	}
}

// MatchesText normalizes query and matches it against title.
func (m *Matcher) MatchesText(title, query string) bool {
	return m.Matches(title, m.Normalize(query))
}

// Matches reports whether every token of q matches title.
func (m *Matcher) Matches(title string, q Query) bool {
	if q.IsEmpty() {
		return m.options.EmptyQuery == EmptyQueryMatchAll
	}
	if title == "" {
		return false
	}

	if m.options.Policy == PolicySubstring {
		lowered := m.lower(clean(title))
		for _, token := range q.Tokens {
			if !strings.Contains(lowered, token) {
				return false
			}
		}
		return true
	}

	lowered, starts := m.indexWords(title)
	for _, token := range q.Tokens {
		if !hasPrefixAt(lowered, starts, token) {
			return false
		}
	}
	return true
}

// indexWords lowercases title word by word and returns the lowered text with
// the byte offsets at which words start.
func (m *Matcher) indexWords(title string) (string, []int) {
	runes := []rune(clean(title))

	var b strings.Builder
	b.Grow(len(runes))
	starts := make([]int, 0, 4)

	segStart := 0
	for i, r := range runes {
		var prev rune
		if i > 0 {
			prev = runes[i-1]
		}
		if !isWordStart(prev, r, i == 0) {
			continue
		}
		if i > segStart {
			b.WriteString(m.lower(string(runes[segStart:i])))
		}
		segStart = i
		starts = append(starts, b.Len())
	}
	if segStart < len(runes) {
		b.WriteString(m.lower(string(runes[segStart:])))
	}
	return b.String(), starts
}

func (m *Matcher) lower(s string) string {
	c := m.casers.Get().(*cases.Caser)
	out := c.String(s)
	m.casers.Put(c)
	return out
}

func hasPrefixAt(text string, starts []int, token string) bool {
	for _, off := range starts {
		if strings.HasPrefix(text[off:], token) {
			return true
		}
	}
	return false
}

// isWordStart reports whether cur begins a word given the rune before it.
// The rules ignore letter case so every casing of a title has the same words.
func isWordStart(prev, cur rune, first bool) bool {
	if !isAlnum(cur) {
		return false
	}
	if first || !isAlnum(prev) {
		return true
	}
	switch {
	case unicode.IsLetter(prev) && unicode.IsDigit(cur):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(cur):
		return true
	case isIdeographic(cur):
		// Scripts written without spaces: every character starts a word.
		return true
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdeographic(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// clean applies NFKC normalization and removes control characters.
func clean(text string) string {
	normed := norm.NFKC.String(text)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, normed)
}
