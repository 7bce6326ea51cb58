package core

import (
	"testing"
	"time"
)

func TestMonthlyEarnings(t *testing.T) {
	month := func(d int) time.Time {
		return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
	}
	events := []Event{
		{ID: "1", EventStartDate: month(2), Payment: 100, PaymentStatus: Paid},
		{ID: "2", EventStartDate: month(10), Payment: 250, PaymentStatus: Paid},
		{ID: "3", EventStartDate: month(20), Payment: 50, PaymentStatus: Paid},
		// Pending and out-of-month payments do not count.
		{ID: "4", EventStartDate: month(5), Payment: 999, PaymentStatus: Pending},
		{ID: "5", EventStartDate: time.Date(2025, 5, 30, 12, 0, 0, 0, time.UTC), Payment: 77, PaymentStatus: Paid},
	}

	if got := MonthlyEarnings(events, 2025, time.June); got != 400 {
		t.Fatalf("monthly earnings = %v, want 400", got)
	}
	if got := YearlyEarnings(events, 2025); got != 477 {
		t.Fatalf("yearly earnings = %v, want 477", got)
	}
	if got := YearlyEarnings(events, 2024); got != 0 {
		t.Fatalf("yearly earnings 2024 = %v, want 0", got)
	}
}

func TestUpcomingAndPending(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "past", EventStartDate: now.Add(-time.Hour), PaymentStatus: Paid},
		{ID: "exact", EventStartDate: now, PaymentStatus: Pending},
		{ID: "future", EventStartDate: now.Add(time.Hour), PaymentStatus: Pending},
	}

	up := Upcoming(events, now)
	if len(up) != 1 || up[0].ID != "future" {
		t.Fatalf("upcoming = %v, want only future", ids(up))
	}

	pending := PendingPayments(events)
	if len(pending) != 2 {
		t.Fatalf("pending = %v, want exact and future", ids(pending))
	}
}

func TestTwelveMonthSeries(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{EventStartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Payment: 300, PaymentStatus: Paid},
		{EventStartDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Payment: 120, PaymentStatus: Paid},
		// One month before the window.
		{EventStartDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Payment: 999, PaymentStatus: Paid},
	}

	series := TwelveMonthSeries(events, now)
	if len(series) != 12 {
		t.Fatalf("series length = %d, want 12", len(series))
	}
	if series[0].Year != 2024 || series[0].Month != time.April {
		t.Fatalf("series starts at %d-%v, want 2024-April", series[0].Year, series[0].Month)
	}
	if series[0].Total != 120 {
		t.Fatalf("oldest bucket = %v, want 120", series[0].Total)
	}
	if series[0].Label != "Apr 24" {
		t.Fatalf("oldest label = %q, want \"Apr 24\"", series[0].Label)
	}
	if last := series[11]; last.Year != 2025 || last.Month != time.March || last.Total != 300 {
		t.Fatalf("newest bucket = %+v, want 2025-March total 300", last)
	}
	for i, b := range series[1:11] {
		if b.Total != 0 {
			t.Fatalf("bucket %d total = %v, want 0", i+1, b.Total)
		}
	}
}
