// Package annotation groups the matches of one scan by term and drives
// navigation and preview over them.
package annotation

import (
	"sort"

	"golang.org/x/net/html"
)

// Location anchors a match in its surface. DOM matches set Element; editor
// matches set Line and the rune columns.
type Location struct {
	Element     *html.Node `json:"-"`
	Line        int        `json:"line"`
	StartColumn int        `json:"startColumn"`
	EndColumn   int        `json:"endColumn"`
}

// Match is one highlighted occurrence. Term is the lower-cased key and Text
// the occurrence as written.
type Match struct {
	ID          string   `json:"id"`
	Term        string   `json:"term"`
	Text        string   `json:"text"`
	Explanation string   `json:"explanation"`
	Location    Location `json:"location"`
}

// Highlighter applies transient visual states to highlighted matches.
type Highlighter interface {
	SetPreview(ids []string, on bool)
	Focus(id string)
	Unfocus(id string)
}

// Group is every match of one term in document order.
type Group struct {
	Term    string
	Matches []Match

	first  int
	cursor int
}

// Count returns the number of matches in the group.
func (g *Group) Count() int { return len(g.Matches) }

// Explanation returns the explanation of the group's first match.
func (g *Group) Explanation() string {
	if len(g.Matches) == 0 {
		return ""
	}
	return g.Matches[0].Explanation
}

// IDs returns the ids of the group's matches.
func (g *Group) IDs() []string {
	ids := make([]string, len(g.Matches))
	for i, m := range g.Matches {
		ids[i] = m.ID
	}
	return ids
}

// Index is the grouped view of one scan. It is rebuilt on every scan and is
// not safe for concurrent use.
type Index struct {
	groups map[string]*Group
	byID   map[string]Match
	order  []*Group
	total  int
}

// Build groups matches by term, keeping document order inside each group.
func Build(matches []Match) *Index {
	idx := &Index{
		groups: make(map[string]*Group),
		byID:   make(map[string]Match, len(matches)),
		total:  len(matches),
	}
	for i, m := range matches {
		g, ok := idx.groups[m.Term]
		if !ok {
			g = &Group{Term: m.Term, first: i}
			idx.groups[m.Term] = g
			idx.order = append(idx.order, g)
		}
		g.Matches = append(g.Matches, m)
		idx.byID[m.ID] = m
	}
	sort.SliceStable(idx.order, func(i, j int) bool {
		a, b := idx.order[i], idx.order[j]
		if a.Count() != b.Count() {
			return a.Count() > b.Count()
		}
		return a.first < b.first
	})
	return idx
}

// Total returns the number of matches across all groups.
func (idx *Index) Total() int { return idx.total }

// Groups returns the groups by count descending, then first appearance.
func (idx *Index) Groups() []*Group {
	out := make([]*Group, len(idx.order))
	copy(out, idx.order)
	return out
}

// Group returns the group for term.
func (idx *Index) Group(term string) (*Group, bool) {
	g, ok := idx.groups[term]
	return g, ok
}

// Counts returns term → number of matches.
func (idx *Index) Counts() map[string]int {
	out := make(map[string]int, len(idx.groups))
	for term, g := range idx.groups {
		out[term] = g.Count()
	}
	return out
}

// Lookup returns the match with the given id.
func (idx *Index) Lookup(id string) (Match, bool) {
	m, ok := idx.byID[id]
	return m, ok
}

// Next returns the match under term's cursor and advances the cursor,
// wrapping to the first match after the last.
func (idx *Index) Next(term string) (Match, bool) {
	g, ok := idx.groups[term]
	if !ok || len(g.Matches) == 0 {
		return Match{}, false
	}
	m := g.Matches[g.cursor%len(g.Matches)]
	g.cursor = (g.cursor + 1) % len(g.Matches)
	return m, true
}

// SetPreview turns the preview state on or off for every match of term.
func (idx *Index) SetPreview(h Highlighter, term string, on bool) {
	g, ok := idx.groups[term]
	if !ok || h == nil {
		return
	}
	h.SetPreview(g.IDs(), on)
}
