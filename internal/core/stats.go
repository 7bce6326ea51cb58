package core

import "time"

// MonthEarnings is one bucket of the twelve-month earnings series.
type MonthEarnings struct {
	Label string     `json:"label"` // e.g. "Jan 06"
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Total float64    `json:"total"`
}

// Upcoming returns the events starting strictly after now.
func Upcoming(events []Event, now time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.EventStartDate.After(now) {
			out = append(out, e)
		}
	}
	return out
}

// MonthlyEarnings sums the payments of paid events whose start date falls
// in the given calendar month.
func MonthlyEarnings(events []Event, year int, month time.Month) float64 {
	var sum float64
	for _, e := range events {
		if e.PaymentStatus != Paid {
			continue
		}
		if e.EventStartDate.Year() == year && e.EventStartDate.Month() == month {
			sum += e.Payment
		}
	}
	return sum
}

// YearlyEarnings sums the payments of paid events starting in the given year.
func YearlyEarnings(events []Event, year int) float64 {
	var sum float64
	for _, e := range events {
		if e.PaymentStatus == Paid && e.EventStartDate.Year() == year {
			sum += e.Payment
		}
	}
	return sum
}

// PendingPayments returns the events still awaiting payment.
func PendingPayments(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.PaymentStatus == Pending {
			out = append(out, e)
		}
	}
	return out
}

// TwelveMonthSeries returns paid earnings for the twelve calendar months
// ending at now's month, oldest first.
func TwelveMonthSeries(events []Event, now time.Time) []MonthEarnings {
	series := make([]MonthEarnings, 0, 12)
	for i := 11; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		series = append(series, MonthEarnings{
			Label: anchor.Format("Jan 06"),
			Year:  anchor.Year(),
			Month: anchor.Month(),
			Total: MonthlyEarnings(events, anchor.Year(), anchor.Month()),
		})
	}
	return series
}
