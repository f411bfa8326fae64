// Package matcher finds whole-word occurrences of registry terms in text and
// drops the ones whose surroundings contain an exception phrase.
package matcher

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/hypelessli/hypeless/internal/terms"
)

// ContextWindow is the number of characters on each side of a hit that are
// searched for exception phrases.
const ContextWindow = 30

// Hit is one accepted occurrence of a term. Offset and Length count runes.
type Hit struct {
	Text        string `json:"text"`
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
	Offset      int    `json:"offset"`
	Length      int    `json:"length"`
}

// End returns the rune offset just past the hit.
func (h Hit) End() int { return h.Offset + h.Length }

// Matcher scans text with a single compiled alternation of all terms.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	registry   *terms.Registry
	re         *regexp2.Regexp
	exceptions []string
	window     int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithWindow overrides ContextWindow.
func WithWindow(n int) Option {
	return func(m *Matcher) {
		if n >= 0 {
			m.window = n
		}
	}
}

// New compiles the registry's terms into one pattern. A registry without
// terms yields an empty Matcher that never reports hits.
//
// At a shared start offset the longest term that satisfies the boundary
// rule wins; equal-length terms keep registry order.
func New(registry *terms.Registry, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		registry:   registry,
		exceptions: registry.Exceptions(),
		window:     ContextWindow,
	}
	for _, opt := range opts {
		opt(m)
	}

	alts := alternatives(registry.Terms())
	if len(alts) == 0 {
		return m, nil
	}

	pattern := `(^|\W)(` + strings.Join(alts, "|") + `)(?=\W|$)`
	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("compiling term pattern: %w", err)
	}
	m.re = re
	return m, nil
}

// alternatives returns escaped, de-duplicated terms, longest first.
func alternatives(list []terms.Term) []string {
	seen := make(map[string]bool, len(list))
	var texts []string
	for _, t := range list {
		key := strings.ToLower(t.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		texts = append(texts, t.Text)
	}
	sort.SliceStable(texts, func(i, j int) bool {
		return len([]rune(texts[i])) > len([]rune(texts[j]))
	})
	for i, t := range texts {
		texts[i] = regexp.QuoteMeta(t)
	}
	return texts
}

// Empty reports whether the matcher has no terms to look for.
func (m *Matcher) Empty() bool { return m == nil || m.re == nil }

// Registry returns the registry the matcher was built from.
func (m *Matcher) Registry() *terms.Registry { return m.registry }

// Window returns the exception context window in runes.
func (m *Matcher) Window() int { return m.window }

// Find returns the accepted hits in text order.
func (m *Matcher) Find(text string) []Hit {
	if m.re == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	runes := []rune(text)

	var hits []Hit
	match, err := m.re.FindRunesMatch(runes)
	for ; match != nil && err == nil; match, err = m.re.FindNextMatch(match) {
		word := match.GroupByNumber(2)
		if word == nil || word.Length == 0 {
			continue
		}
		start, end := word.Index, word.Index+word.Length
		if m.suppressed(runes, start, end) {
			continue
		}
		matched := string(runes[start:end])
		key := strings.ToLower(matched)
		expl, _ := m.registry.Explain(key)
		hits = append(hits, Hit{
			Text:        matched,
			Term:        key,
			Explanation: expl,
			Offset:      start,
			Length:      end - start,
		})
	}
	if err != nil {
		log.Printf("matcher: scan aborted: %v", err)
	}
	return hits
}

// suppressed reports whether an exception phrase occurs within the window
// around runes[start:end].
func (m *Matcher) suppressed(runes []rune, start, end int) bool {
	if len(m.exceptions) == 0 {
		return false
	}
	lo := max(0, start-m.window)
	hi := min(len(runes), end+m.window)
	ctx := strings.ToLower(string(runes[lo:hi]))
	for _, exc := range m.exceptions {
		if strings.Contains(ctx, exc) {
			return true
		}
	}
	return false
}
