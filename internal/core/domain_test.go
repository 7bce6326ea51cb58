package core

import (
	"testing"
	"time"
)

func TestEventDraftValidate(t *testing.T) {
	start := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)
	good := EventDraft{
		ClientName:     "Alice & Bob",
		EventType:      "Wedding",
		EventStartDate: start,
		EventEndDate:   start.Add(4 * time.Hour),
		Payment:        3500,
		PaymentStatus:  Pending,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*EventDraft)
		want   error
	}{
		{"empty client name", func(d *EventDraft) { d.ClientName = "  " }, ErrEmptyClientName},
		{"zero start date", func(d *EventDraft) { d.EventStartDate = time.Time{} }, ErrMissingStartDate},
		{"negative payment", func(d *EventDraft) { d.Payment = -1 }, ErrNegativePayment},
		{"bad status", func(d *EventDraft) { d.PaymentStatus = "Overdue" }, ErrBadPaymentStatus},
	}
	for _, tc := range cases {
		d := good
		tc.mutate(&d)
		if err := d.Validate(); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestNormalizeClearsVideographyWindow(t *testing.T) {
	start := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	d := EventDraft{
		ClientName:           "Charlie",
		EventStartDate:       start,
		PaymentStatus:        Paid,
		NeedsVideography:     false,
		VideographyStartDate: &start,
		VideographyEndDate:   &end,
	}
	d.Normalize()
	if d.VideographyStartDate != nil || d.VideographyEndDate != nil {
		t.Fatalf("expected videography window cleared, got %v - %v",
			d.VideographyStartDate, d.VideographyEndDate)
	}

	d.NeedsVideography = true
	d.VideographyStartDate = &start
	d.VideographyEndDate = &end
	d.Normalize()
	if d.VideographyStartDate == nil || d.VideographyEndDate == nil {
		t.Fatalf("expected videography window kept while flag is set")
	}
}

func TestDraftEventRoundTrip(t *testing.T) {
	start := time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC)
	d := EventDraft{
		ClientName:     "Diana",
		EventType:      "Corporate",
		EventStartDate: start,
		Payment:        2000,
		PaymentStatus:  Paid,
		Notes:          "headshots",
	}
	e := d.Event("abc")
	if e.ID != "abc" {
		t.Fatalf("expected id abc, got %q", e.ID)
	}
	if got := e.Draft(); got != d {
		t.Fatalf("draft round trip mismatch: %+v vs %+v", got, d)
	}
}

func TestSortEventTypes(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		// Adding a label slots it alphabetically before the default.
		{[]string{"Birthday", "Other", "Mehndi"}, []string{"Birthday", "Mehndi", "Other"}},
		{[]string{"Other", "Wedding", "Birthday"}, []string{"Birthday", "Wedding", "Other"}},
		{[]string{"Other"}, []string{"Other"}},
		{nil, nil},
	}
	for i, tc := range cases {
		labels := append([]string(nil), tc.in...)
		SortEventTypes(labels)
		if len(labels) != len(tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, labels, tc.want)
		}
		for j := range labels {
			if labels[j] != tc.want[j] {
				t.Fatalf("case %d: got %v, want %v", i, labels, tc.want)
			}
		}
	}
}

func TestContainsTypeFold(t *testing.T) {
	labels := []string{"Wedding", "Birthday"}
	if !ContainsTypeFold(labels, "wedding") {
		t.Fatalf("expected case-insensitive match")
	}
	if ContainsTypeFold(labels, "Corporate") {
		t.Fatalf("unexpected match")
	}
}
