// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persona maps a persona role and job-to-be-done task onto the
// keyword set and enhanced query used for relevance scoring. Keyword sets
// come from a built-in lexicon that an external YAML file can extend or
// override; unknown personas fall back to a generic empty set.
package persona

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// GenericKey is the lexicon key used when no persona entry matches.
const GenericKey = "general"

// Query-enhancement limits, matching how many keywords are worth folding
// into the embedding query before it turns into noise.
const (
	queryPersonaKeywords = 5
	queryTaskKeywords    = 3
)

// Entry is one persona's lexicon record.
type Entry struct {
	// Aliases are lowercase substrings of the role text that select
	// this persona (e.g. "travel", "planner").
	Aliases []string `yaml:"aliases"`

	// Keywords are the terms whose presence in a section signals
	// relevance for this persona.
	Keywords []string `yaml:"keywords"`
}

// TaskGroup is one task-category record: when any trigger appears in the
// task text, the group's keywords join the scoring set.
type TaskGroup struct {
	Keywords []string `yaml:"keywords"`
}

// Lexicon holds all persona entries and task keyword groups.
type Lexicon struct {
	Personas map[string]Entry     `yaml:"personas"`
	Tasks    map[string]TaskGroup `yaml:"tasks"`
}

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Personas: map[string]Entry{
			"travel_planner": {
				Aliases:  []string{"travel", "planner", "tour"},
				Keywords: []string{"destination", "itinerary", "accommodation", "attraction", "transport", "budget", "activity", "restaurant", "hotel"},
			},
			"hr_professional": {
				Aliases:  []string{"hr", "human resources", "recruiter"},
				Keywords: []string{"form", "onboarding", "compliance", "employee", "policy", "procedure", "documentation", "workflow", "training"},
			},
			"food_contractor": {
				Aliases:  []string{"food", "chef", "contractor", "caterer"},
				Keywords: []string{"recipe", "ingredient", "vegetarian", "buffet", "cooking", "menu", "preparation", "dietary", "portion"},
			},
			"researcher": {
				Aliases:  []string{"researcher", "scientist"},
				Keywords: []string{"methodology", "analysis", "data", "literature", "study", "research", "findings", "conclusion"},
			},
			"student": {
				Aliases:  []string{"student", "undergraduate"},
				Keywords: []string{"concept", "theory", "example", "practice", "exam", "study", "learning", "explanation"},
			},
			"analyst": {
				Aliases:  []string{"analyst", "investment"},
				Keywords: []string{"trend", "performance", "metrics", "analysis", "comparison", "data", "insights", "report"},
			},
		},
		Tasks: map[string]TaskGroup{
			"planning":    {Keywords: []string{"plan", "schedule", "organize", "prepare", "arrange", "coordinate"}},
			"learning":    {Keywords: []string{"learn", "understand", "study", "practice", "master", "tutorial"}},
			"analysis":    {Keywords: []string{"analyze", "evaluate", "compare", "assess", "review", "examine"}},
			"preparation": {Keywords: []string{"prepare", "create", "make", "develop", "design", "build"}},
		},
	}
}

// Load returns the built-in lexicon merged with the YAML file at path.
// File entries replace built-in entries with the same key; an empty path
// returns the defaults unchanged.
func Load(path string) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon file %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing lexicon file %s: %w", path, err)
	}

	for key, entry := range override.Personas {
		lex.Personas[key] = entry
	}
	for key, group := range override.Tasks {
		lex.Tasks[key] = group
	}
	return lex, nil
}

// Profile is the derived scoring context for one persona/task pair.
type Profile struct {
	// Role and Task are the job fields verbatim.
	Role string
	Task string

	// Key is the matched lexicon key, or GenericKey.
	Key string

	// Keywords is the deduplicated union of persona and task keywords,
	// lowercased, used for the keyword signal.
	Keywords []string

	// Query is the enhanced query embedded for the semantic signal:
	// role + task + leading persona and task keywords.
	Query string
}

// Resolve builds the scoring profile for a persona role and task.
func (l *Lexicon) Resolve(role, task string) Profile {
	key, entry := l.matchPersona(role)
	taskKW := l.taskKeywords(task)

	p := Profile{
		Role:     role,
		Task:     task,
		Key:      key,
		Keywords: dedupLower(append(append([]string{}, entry.Keywords...), taskKW...)),
	}

	var q strings.Builder
	q.WriteString(role)
	q.WriteString(" ")
	q.WriteString(task)
	for _, kw := range head(entry.Keywords, queryPersonaKeywords) {
		q.WriteString(" ")
		q.WriteString(kw)
	}
	for _, kw := range head(taskKW, queryTaskKeywords) {
		q.WriteString(" ")
		q.WriteString(kw)
	}
	p.Query = q.String()

	return p
}

// matchPersona finds the lexicon entry whose alias appears in the role
// text. Keys are checked in sorted order so resolution is deterministic
// when multiple aliases match.
func (l *Lexicon) matchPersona(role string) (string, Entry) {
	lower := strings.ToLower(role)

	for _, key := range sortedKeys(l.Personas) {
		entry := l.Personas[key]
		for _, alias := range entry.Aliases {
			if strings.Contains(lower, alias) {
				return key, entry
			}
		}
	}
	return GenericKey, Entry{}
}

// taskKeywords collects the keyword groups whose category is triggered by
// the task text. A group triggers when any of its keywords appears in the
// task description.
func (l *Lexicon) taskKeywords(task string) []string {
	lower := strings.ToLower(task)

	var out []string
	for _, key := range sortedKeys(l.Tasks) {
		group := l.Tasks[key]
		for _, kw := range group.Keywords {
			if strings.Contains(lower, kw) {
				out = append(out, group.Keywords...)
				break
			}
		}
	}
	return dedupLower(out)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupLower(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
