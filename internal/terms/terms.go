// Package terms holds the hype vocabulary: the flagged terms with their
// explanations and the exception phrases that suppress a flag.
package terms

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Term is a flagged word or phrase and the reason it is flagged.
type Term struct {
	Text        string `yaml:"term" json:"term"`
	Explanation string `yaml:"explanation" json:"explanation"`
}

// Registry is an immutable, ordered term list plus exception phrases.
// Lookups are by lower-cased term text.
type Registry struct {
	terms        []Term
	exceptions   []string
	explanations map[string]string
}

// New builds a Registry from the given terms and exceptions. Blank terms
// are dropped. When two terms share the same lower-cased text the first
// explanation wins.
func New(list []Term, exceptions []string) *Registry {
	r := &Registry{explanations: make(map[string]string, len(list))}
	for _, t := range list {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		r.terms = append(r.terms, Term{Text: text, Explanation: t.Explanation})
		key := strings.ToLower(text)
		if _, ok := r.explanations[key]; !ok {
			r.explanations[key] = t.Explanation
		}
	}
	for _, e := range exceptions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			r.exceptions = append(r.exceptions, e)
		}
	}
	return r
}

// Default returns the built-in registry.
func Default() *Registry {
	return New(defaultTerms, defaultExceptions)
}

// Terms returns a copy of the term list in registry order.
func (r *Registry) Terms() []Term {
	out := make([]Term, len(r.terms))
	copy(out, r.terms)
	return out
}

// Exceptions returns a copy of the lower-cased exception phrases.
func (r *Registry) Exceptions() []string {
	out := make([]string, len(r.exceptions))
	copy(out, r.exceptions)
	return out
}

// Explain returns the explanation for a term, matched case-insensitively.
func (r *Registry) Explain(term string) (string, bool) {
	e, ok := r.explanations[strings.ToLower(strings.TrimSpace(term))]
	return e, ok
}

// Len reports the number of terms.
func (r *Registry) Len() int { return len(r.terms) }

// file is the on-disk layout of a terms file.
type file struct {
	Terms      []Term   `yaml:"terms"`
	Exceptions []string `yaml:"exceptions"`
	// Extend keeps the built-in vocabulary and appends the file's entries.
	Extend bool `yaml:"extend"`
}

// Load reads a YAML terms file:
//
//	extend: true
//	terms:
//	  - term: seminal
//	    explanation: Subjective praise.
//	exceptions:
//	  - seminal fluid
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading terms file %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing terms file %s: %w", path, err)
	}
	if f.Extend {
		return New(append(append([]Term{}, defaultTerms...), f.Terms...),
			append(append([]string{}, defaultExceptions...), f.Exceptions...)), nil
	}
	return New(f.Terms, f.Exceptions), nil
}
