package core

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	SortByClientName SortKey = "clientName"
	SortByStartDate  SortKey = "eventStartDate"
	SortByPayment    SortKey = "payment"
)

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// FilterAll matches every value of a type or status filter.
const FilterAll = "all"

type (
	SortKey       string
	SortDirection string

	// EventFilter narrows an event snapshot for the list view. Zero
	// values (and FilterAll) leave the corresponding dimension alone.
	EventFilter struct {
		Text   string
		Type   string
		Status string
	}
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByClientName, SortByStartDate, SortByPayment:
		return true
	}
	return false
}

// FilterEvents returns the events matching all three filter dimensions.
// The text filter is a case-insensitive substring match against client
// name or location. The input slice is not modified.
func FilterEvents(events []Event, f EventFilter) []Event {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if text != "" &&
			!strings.Contains(strings.ToLower(e.ClientName), text) &&
			!strings.Contains(strings.ToLower(e.Location), text) {
			continue
		}
		if f.Type != "" && f.Type != FilterAll && e.EventType != f.Type {
			continue
		}
		if f.Status != "" && f.Status != FilterAll && string(e.PaymentStatus) != f.Status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortEvents returns a sorted copy of events. Client names compare under
// English collation, dates and payments numerically. The sort is stable,
// so records with equal keys keep their snapshot order.
func SortEvents(events []Event, key SortKey, dir SortDirection) []Event {
	out := make([]Event, len(events))
	copy(out, events)

	var cmp func(a, b Event) int
	switch key {
	case SortByClientName:
		c := collate.New(language.English)
		cmp = func(a, b Event) int { return c.CompareString(a.ClientName, b.ClientName) }
	case SortByPayment:
		cmp = func(a, b Event) int {
			switch {
			case a.Payment < b.Payment:
				return -1
			case a.Payment > b.Payment:
				return 1
			}
			return 0
		}
	default: // SortByStartDate
		cmp = func(a, b Event) int {
			switch {
			case a.EventStartDate.Before(b.EventStartDate):
				return -1
			case a.EventStartDate.After(b.EventStartDate):
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}
