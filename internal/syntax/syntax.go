// Package syntax finds the parts of a LaTeX source line that are markup
// rather than prose.
package syntax

import (
	"log"

	"github.com/dlclark/regexp2"
)

// Zone is a half-open rune range [Start, End) within one line.
type Zone struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether [start, end) lies entirely inside the zone.
func (z Zone) Contains(start, end int) bool {
	return start >= z.Start && end <= z.End
}

// Patterns for non-prose constructs. A command swallows a directly attached
// brace argument only when the argument has no whitespace, so
// \textbf{word} and \label{fig:x} are markup while \section{Some title}
// is prose.
var patterns = []*regexp2.Regexp{
	// \cmd, \cmd*, \cmd[opts], \cmd{token}
	regexp2.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?(?:\{[^\s{}]*\})?`, regexp2.ECMAScript),
	regexp2.MustCompile(`[{}]`, regexp2.ECMAScript),
	// inline math
	regexp2.MustCompile(`\$(.*?)\$`, regexp2.ECMAScript),
	// display math
	regexp2.MustCompile(`\\\[(.*?)\\\]`, regexp2.ECMAScript),
	regexp2.MustCompile(`\\(begin|end)\{.*?\}`, regexp2.ECMAScript),
}

// Zones returns the exclusion zones of line, ordered by pattern and then by
// position. Zones may overlap.
func Zones(line string) []Zone {
	if line == "" {
		return nil
	}
	var zones []Zone
	for _, re := range patterns {
		m, err := re.FindStringMatch(line)
		for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
			if m.Length == 0 {
				continue
			}
			zones = append(zones, Zone{Start: m.Index, End: m.Index + m.Length})
		}
		if err != nil {
			log.Printf("syntax: zone pattern %s: %v", re, err)
		}
	}
	return zones
}

// Excluded reports whether [start, end) is fully inside any of zones.
// A span that only overlaps a zone is not excluded.
func Excluded(zones []Zone, start, end int) bool {
	for _, z := range zones {
		if z.Contains(start, end) {
			return true
		}
	}
	return false
}
