package doctors

import "strings"

// Filter returns the doctors whose name, specialization, or email contains
// the query, case-insensitively. An empty query passes everything through.
// The input slice is never mutated.
func Filter(items []*Doctor, query string) []*Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var visible []*Doctor
	for _, d := range items {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Specialization), q) ||
			strings.Contains(strings.ToLower(d.Email), q) {
			visible = append(visible, d)
		}
	}
	return visible
}
