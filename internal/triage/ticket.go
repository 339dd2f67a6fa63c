package triage

import "fmt"

var ticketPrefixes = map[string]string{
	PriorityUrgent: "U",
	PriorityHigh:   "A",
	PriorityMedium: "M",
	PriorityLow:    "B",
}

// NewTicket builds the queue ticket shown on the waiting-room panel: a
// tier prefix plus a random number in [1,999], zero-padded (e.g. "U047").
// Tickets are not unique across sessions; collisions are accepted, the
// panel disambiguates by row.
func NewTicket(priority string, r Rand) string {
	prefix, ok := ticketPrefixes[priority]
	if !ok {
		prefix = "G"
	}
	return fmt.Sprintf("%s%03d", prefix, 1+r.Intn(999))
}
