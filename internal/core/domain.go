package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Paid    PaymentStatus = "Paid"
	Pending PaymentStatus = "Pending"
)

// DefaultEventType is the protected fallback category. It can neither be
// renamed nor deleted, and events fall back to it when their own category
// is removed.
const DefaultEventType = "Other"

// DefaultEventTypes seeds a partition that has never stored a label list.
// The protected label comes last.
var DefaultEventTypes = []string{
	"Wedding",
	"Birthday",
	"Baby Shower",
	"Housewarming",
	"Half Saree",
	"Corporate",
	DefaultEventType,
}

type (
	PaymentStatus string

	// Event is one booked engagement. The videography window is only
	// meaningful while NeedsVideography is set.
	Event struct {
		ID                   string        `json:"id"`
		ClientName           string        `json:"clientName"`
		EventType            string        `json:"eventType"`
		EventStartDate       time.Time     `json:"eventStartDate"`
		EventEndDate         time.Time     `json:"eventEndDate"`
		Location             string        `json:"location"`
		Phone                string        `json:"phone"`
		Payment              float64       `json:"payment"`
		PaymentStatus        PaymentStatus `json:"paymentStatus"`
		Notes                string        `json:"notes"`
		NeedsVideography     bool          `json:"needsVideography"`
		VideographyStartDate *time.Time    `json:"videographyStartDate,omitempty"`
		VideographyEndDate   *time.Time    `json:"videographyEndDate,omitempty"`
	}

	// EventDraft is the shape of an event before it has been stored.
	// The repository assigns the identifier.
	EventDraft struct {
		ClientName           string        `json:"clientName"`
		EventType            string        `json:"eventType"`
		EventStartDate       time.Time     `json:"eventStartDate"`
		EventEndDate         time.Time     `json:"eventEndDate"`
		Location             string        `json:"location"`
		Phone                string        `json:"phone"`
		Payment              float64       `json:"payment"`
		PaymentStatus        PaymentStatus `json:"paymentStatus"`
		Notes                string        `json:"notes"`
		NeedsVideography     bool          `json:"needsVideography"`
		VideographyStartDate *time.Time    `json:"videographyStartDate,omitempty"`
		VideographyEndDate   *time.Time    `json:"videographyEndDate,omitempty"`
	}
)

var (
	ErrEmptyClientName  = errors.New("empty client name")
	ErrNegativePayment  = errors.New("payment must not be negative")
	ErrBadPaymentStatus = errors.New("invalid payment status")
	ErrMissingStartDate = errors.New("missing event start date")
)

func (s PaymentStatus) Valid() bool {
	return s == Paid || s == Pending
}

// Normalize enforces the edit-boundary invariant: when videography is not
// requested, the videography window is cleared.
func (d *EventDraft) Normalize() {
	if !d.NeedsVideography {
		d.VideographyStartDate = nil
		d.VideographyEndDate = nil
	}
}

func (d EventDraft) Validate() error {
	if len(strings.TrimSpace(d.ClientName)) == 0 {
		return ErrEmptyClientName
	}
	if d.EventStartDate.IsZero() {
		return ErrMissingStartDate
	}
	if d.Payment < 0 {
		return ErrNegativePayment
	}
	if !d.PaymentStatus.Valid() {
		return ErrBadPaymentStatus
	}
	return nil
}

// Event builds the stored record for a draft once an identifier is known.
func (d EventDraft) Event(id string) Event {
	return Event{
		ID:                   id,
		ClientName:           d.ClientName,
		EventType:            d.EventType,
		EventStartDate:       d.EventStartDate,
		EventEndDate:         d.EventEndDate,
		Location:             d.Location,
		Phone:                d.Phone,
		Payment:              d.Payment,
		PaymentStatus:        d.PaymentStatus,
		Notes:                d.Notes,
		NeedsVideography:     d.NeedsVideography,
		VideographyStartDate: d.VideographyStartDate,
		VideographyEndDate:   d.VideographyEndDate,
	}
}

// Draft returns the identifier-less shape of an event, used when editing.
func (e Event) Draft() EventDraft {
	return EventDraft{
		ClientName:           e.ClientName,
		EventType:            e.EventType,
		EventStartDate:       e.EventStartDate,
		EventEndDate:         e.EventEndDate,
		Location:             e.Location,
		Phone:                e.Phone,
		Payment:              e.Payment,
		PaymentStatus:        e.PaymentStatus,
		Notes:                e.Notes,
		NeedsVideography:     e.NeedsVideography,
		VideographyStartDate: e.VideographyStartDate,
		VideographyEndDate:   e.VideographyEndDate,
	}
}

// SortEventTypes orders labels alphabetically (case-sensitive byte order)
// with the protected default always last.
func SortEventTypes(labels []string) {
	// Insertion sort keeps this stable; label lists are tiny.
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && typeLess(labels[j], labels[j-1]); j-- {
			labels[j], labels[j-1] = labels[j-1], labels[j]
		}
	}
}

func typeLess(a, b string) bool {
	if a == DefaultEventType {
		return false
	}
	if b == DefaultEventType {
		return true
	}
	return a < b
}

// ContainsTypeFold reports whether labels already holds label under
// case-insensitive comparison.
func ContainsTypeFold(labels []string, label string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}
