package terms

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	if r.Len() == 0 {
		t.Fatal("expected built-in terms")
	}
	expl, ok := r.Explain("Breakthrough")
	if !ok {
		t.Fatal("expected breakthrough to be known")
	}
	if expl == "" {
		t.Error("expected a non-empty explanation")
	}
	for _, e := range r.Exceptions() {
		if e == "first," {
			return
		}
	}
	t.Error("expected exceptions to be lower-cased")
}

func TestNewDropsBlankTermsAndKeepsFirstExplanation(t *testing.T) {
	r := New([]Term{
		{Text: "  novel ", Explanation: "first"},
		{Text: "", Explanation: "blank"},
		{Text: "NOVEL", Explanation: "second"},
	}, []string{"  ", "First-Principles"})

	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
	if got := r.Terms()[0].Text; got != "novel" {
		t.Errorf("term text = %q, want trimmed %q", got, "novel")
	}
	if expl, _ := r.Explain("Novel"); expl != "first" {
		t.Errorf("Explain = %q, want %q", expl, "first")
	}
	if ex := r.Exceptions(); len(ex) != 1 || ex[0] != "first-principles" {
		t.Errorf("Exceptions = %v", ex)
	}
}

func TestTermsReturnsCopy(t *testing.T) {
	r := New([]Term{{Text: "novel"}}, nil)
	list := r.Terms()
	list[0].Text = "mutated"
	if r.Terms()[0].Text != "novel" {
		t.Error("registry was mutated through Terms()")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		wantLen  int
		wantTerm string
	}{
		{
			name: "replace",
			content: `terms:
  - term: seminal
    explanation: Subjective praise.
exceptions:
  - seminal fluid
`,
			wantLen:  1,
			wantTerm: "seminal",
		},
		{
			name: "extend",
			content: `extend: true
terms:
  - term: seminal
    explanation: Subjective praise.
`,
			wantLen:  len(defaultTerms) + 1,
			wantTerm: "novel",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			r, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if r.Len() != tt.wantLen {
				t.Errorf("Len = %d, want %d", r.Len(), tt.wantLen)
			}
			if _, ok := r.Explain(tt.wantTerm); !ok {
				t.Errorf("expected %q to be known", tt.wantTerm)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
