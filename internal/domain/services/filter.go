package services

import "strings"

// Filter intersects a text search over name and description with an
// availability selection ("all", "available", "unavailable"). An empty query
// and "all" pass everything through.
func Filter(items []*Service, query, availability string) []*Service {
	q := strings.ToLower(strings.TrimSpace(query))
	var visible []*Service
	for _, s := range items {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Description), q) {
			continue
		}
		switch availability {
		case "available":
			if !s.IsAvailable {
				continue
			}
		case "unavailable":
			if s.IsAvailable {
				continue
			}
		}
		visible = append(visible, s)
	}
	return visible
}
