package registrations

import (
	"time"

	"github.com/google/uuid"
)

// Status is derived from whether proof of payment is attached.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Registration is one team's entry. Rows are created by the registration
// process; this service only attaches proof fields.
type Registration struct {
	ID                uuid.UUID `json:"id"`
	TeamName          string    `json:"team_name"`
	PaymentScreenshot *string   `json:"payment_screenshot"`
	UTRNumber         *string   `json:"utr_number"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProofLocation returns the screenshot location, or "" when none is attached.
func (r *Registration) ProofLocation() string {
	if r.PaymentScreenshot == nil {
		return ""
	}
	return *r.PaymentScreenshot
}

// Reference returns the UTR number, or "" when none is attached.
func (r *Registration) Reference() string {
	if r.UTRNumber == nil {
		return ""
	}
	return *r.UTRNumber
}

// HasProof reports whether a non-empty screenshot location is attached.
func (r *Registration) HasProof() bool {
	return r.ProofLocation() != ""
}

func (r *Registration) Status() Status {
	if r.HasProof() {
		return StatusConfirmed
	}
	return StatusPending
}

// ProofCommand is the pair written to a registration in a single update.
type ProofCommand struct {
	PaymentScreenshot string `json:"payment_screenshot"`
	UTRNumber         string `json:"utr_number"`
}

type CreateCommand struct {
	ID       uuid.UUID `json:"id"`
	TeamName string    `json:"team_name"`
}
