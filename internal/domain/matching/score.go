// Package matching ranks jobs against a candidate's skills.
package matching

import "strings"

// Score counts how many of the job's requirements appear in skills,
// ignoring case. Repeated requirements count once per occurrence, so the
// result never exceeds len(requirements).
func Score(requirements, skills []string) int {
	if len(requirements) == 0 || len(skills) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[normalize(s)] = struct{}{}
	}

	score := 0
	for _, r := range requirements {
		if _, ok := set[normalize(r)]; ok {
			score++
		}
	}
	return score
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSkills lower-cases, trims and de-duplicates skills, dropping
// empty entries. Order of first occurrence is kept.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
