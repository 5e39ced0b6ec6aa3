package registry

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/masatana/go-textdistance"
)

const (
	maxSuggestions     = 3
	maxSuggestDistance = 2
)

// Suggest returns up to three visible command or category names close to
// name, best match first. Fuzzy subsequence matches rank ahead of plain edit
// distance matches.
func (r *Registry) Suggest(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	candidates := r.suggestCandidates()

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] && len(out) < maxSuggestions {
			seen[s] = true
			out = append(out, s)
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	sort.Sort(ranks)
	for _, rank := range ranks {
		add(rank.Target)
	}

	type scored struct {
		target   string
		distance int
	}
	var near []scored
	lowered := strings.ToLower(name)
	for _, candidate := range candidates {
		d := textdistance.LevenshteinDistance(lowered, strings.ToLower(candidate))
		if d <= maxSuggestDistance {
			near = append(near, scored{candidate, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].distance < near[j].distance })
	for _, c := range near {
		add(c.target)
	}
	return out
}

func (r *Registry) suggestCandidates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var candidates []string
	for _, cmd := range r.commands {
		if cmd.Hidden {
			continue
		}
		candidates = append(candidates, cmd.Name)
		candidates = append(candidates, cmd.Aliases...)
	}
	for _, category := range r.categories {
		candidates = append(candidates, category.Name)
	}
	return candidates
}
