package patients

import "strings"

// Filter returns the patients whose first name, last name, or email contains
// the query, case-insensitively. An empty query passes everything through.
func Filter(items []*Patient, query string) []*Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var visible []*Patient
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.FirstName), q) ||
			strings.Contains(strings.ToLower(p.LastName), q) ||
			strings.Contains(strings.ToLower(p.Email), q) {
			visible = append(visible, p)
		}
	}
	return visible
}
