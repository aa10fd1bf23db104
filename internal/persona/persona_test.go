// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveKnownPersonas(t *testing.T) {
	lex := Default()

	tests := []struct {
		name    string
		role    string
		task    string
		wantKey string
	}{
		{"travel planner", "Travel Planner", "Plan a trip of 4 days for a group of 10 college friends.", "travel_planner"},
		{"hr professional", "HR professional", "Create and manage fillable forms for onboarding and compliance.", "hr_professional"},
		{"food contractor", "Food Contractor", "Prepare a vegetarian buffet-style dinner menu for a corporate gathering.", "food_contractor"},
		{"researcher", "PhD Researcher in Computational Biology", "Review the methodology of prior studies.", "researcher"},
		{"student", "Undergraduate Chemistry Student", "Identify key concepts for exam preparation.", "student"},
		{"analyst", "Investment Analyst", "Analyze revenue trends and R&D investments.", "analyst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := lex.Resolve(tt.role, tt.task)
			if p.Key != tt.wantKey {
				t.Errorf("Resolve(%q, %q).Key = %q, want %q", tt.role, tt.task, p.Key, tt.wantKey)
			}
			if p.Role != tt.role || p.Task != tt.task {
				t.Errorf("profile did not carry role/task verbatim: %+v", p)
			}
			if len(p.Keywords) == 0 {
				t.Errorf("profile has no keywords")
			}
			if !strings.HasPrefix(p.Query, tt.role+" "+tt.task) {
				t.Errorf("query does not start with role and task: %q", p.Query)
			}
		})
	}
}

func TestResolveUnknownPersonaFallsBack(t *testing.T) {
	lex := Default()

	p := lex.Resolve("Marine Biologist", "Catalogue reef species observed on the dive.")
	if p.Key != GenericKey {
		t.Fatalf("Key = %q, want %q", p.Key, GenericKey)
	}
	// No persona keywords, and the task text triggers no keyword group.
	if len(p.Keywords) != 0 {
		t.Errorf("Keywords = %v, want empty", p.Keywords)
	}
	if p.Query != "Marine Biologist Catalogue reef species observed on the dive." {
		t.Errorf("Query = %q", p.Query)
	}
}

func TestResolveTaskKeywords(t *testing.T) {
	lex := Default()

	// "plan" triggers the planning group even for an unmatched persona.
	p := lex.Resolve("Logistics Coordinator", "plan the warehouse move")
	want := map[string]bool{"plan": true, "schedule": true, "organize": true, "prepare": true, "arrange": true, "coordinate": true}
	if len(p.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want the planning group", p.Keywords)
	}
	for _, kw := range p.Keywords {
		if !want[kw] {
			t.Errorf("unexpected keyword %q", kw)
		}
	}
}

func TestResolveKeywordsDeduplicatedAndLowercased(t *testing.T) {
	lex := Default()

	// The student persona and the learning task group share "study" and
	// "practice"; the union must list each once.
	p := lex.Resolve("Student", "understand the course material")
	seen := map[string]int{}
	for _, kw := range p.Keywords {
		if kw != strings.ToLower(kw) {
			t.Errorf("keyword %q not lowercased", kw)
		}
		seen[kw]++
	}
	for kw, n := range seen {
		if n > 1 {
			t.Errorf("keyword %q appears %d times", kw, n)
		}
	}
	if seen["study"] != 1 || seen["practice"] != 1 {
		t.Errorf("shared keywords missing from union: %v", p.Keywords)
	}
}

func TestResolveQueryKeywordLimits(t *testing.T) {
	lex := Default()

	p := lex.Resolve("Travel Planner", "plan the trip")
	// role(2) + task(3) + 5 persona keywords + 3 task keywords.
	words := strings.Fields(p.Query)
	if len(words) != 2+3+queryPersonaKeywords+queryTaskKeywords {
		t.Errorf("query has %d words, want %d: %q", len(words), 2+3+queryPersonaKeywords+queryTaskKeywords, p.Query)
	}
}

func TestResolveDeterministic(t *testing.T) {
	lex := Default()

	first := lex.Resolve("Travel Planner", "plan and prepare a 4 day trip")
	for i := 0; i < 20; i++ {
		p := lex.Resolve("Travel Planner", "plan and prepare a 4 day trip")
		if p.Query != first.Query {
			t.Fatalf("query changed across runs: %q vs %q", p.Query, first.Query)
		}
		if strings.Join(p.Keywords, ",") != strings.Join(first.Keywords, ",") {
			t.Fatalf("keyword order changed across runs: %v vs %v", p.Keywords, first.Keywords)
		}
	}
}

func TestLoadDefaultsWhenPathEmpty(t *testing.T) {
	lex, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := lex.Personas["travel_planner"]; !ok {
		t.Errorf("built-in persona missing")
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := `personas:
  marine_biologist:
    aliases: ["marine", "biologist"]
    keywords: ["reef", "species", "habitat"]
  travel_planner:
    aliases: ["travel"]
    keywords: ["cruise"]
tasks:
  surveying:
    keywords: ["survey", "catalogue", "record"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// New persona is added.
	p := lex.Resolve("Marine Biologist", "catalogue reef species")
	if p.Key != "marine_biologist" {
		t.Errorf("Key = %q, want marine_biologist", p.Key)
	}

	// Existing persona is replaced, not merged.
	tp := lex.Personas["travel_planner"]
	if len(tp.Keywords) != 1 || tp.Keywords[0] != "cruise" {
		t.Errorf("travel_planner keywords = %v, want [cruise]", tp.Keywords)
	}

	// Untouched built-ins survive.
	if _, ok := lex.Personas["researcher"]; !ok {
		t.Errorf("researcher entry lost during merge")
	}

	// New task group triggers.
	if got := lex.taskKeywords("catalogue the finds"); len(got) != 3 {
		t.Errorf("taskKeywords = %v, want the surveying group", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("personas: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Errorf("expected error for malformed YAML")
	}
}
