package http

import (
	"net/http"
	"time"

	"shuttersync/internal/core"
)

type dashboardResponse struct {
	UpcomingCount   int                  `json:"upcomingCount"`
	Upcoming        []core.Event         `json:"upcoming"`
	MonthlyEarnings float64              `json:"monthlyEarnings"`
	YearlyEarnings  float64              `json:"yearlyEarnings"`
	PendingCount    int                  `json:"pendingCount"`
	PendingPayments []core.Event         `json:"pendingPayments"`
	MonthlySeries   []core.MonthEarnings `json:"monthlySeries"`
}

// handleDashboard computes the dashboard view from the current event
// snapshot: stat cards, the next five shoots, pending payments and the
// twelve-month earnings series.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	events := s.hub.For(r.Context(), user.ID).Events.List()
	now := time.Now()

	upcoming := core.SortEvents(core.Upcoming(events, now), core.SortByStartDate, core.Ascending)
	next := upcoming
	if len(next) > 5 {
		next = next[:5]
	}
	pending := core.PendingPayments(events)

	writeJSON(w, http.StatusOK, dashboardResponse{
		UpcomingCount:   len(upcoming),
		Upcoming:        next,
		MonthlyEarnings: core.MonthlyEarnings(events, now.Year(), now.Month()),
		YearlyEarnings:  core.YearlyEarnings(events, now.Year()),
		PendingCount:    len(pending),
		PendingPayments: pending,
		MonthlySeries:   core.TwelveMonthSeries(events, now),
	})
}
