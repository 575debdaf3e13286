package appointments

// ByStatus returns the appointments matching the status exactly. "all" or an
// empty status passes everything through.
func ByStatus(items []*Appointment, status string) []*Appointment {
	if status == "" || status == "all" {
		return items
	}
	var visible []*Appointment
	for _, a := range items {
		if a.Status == status {
			visible = append(visible, a)
		}
	}
	return visible
}
