package registrations

import (
	"net/url"

	"github.com/JaimeStill/regdesk/pkg/query"
	"github.com/JaimeStill/regdesk/pkg/repository"
)

var projection = query.NewProjectionMap("public", "registrations", "r").
	Project("id", "id").
	Project("team_name", "team_name").
	Project("payment_screenshot", "payment_screenshot").
	Project("utr_number", "utr_number").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "created_at", Descending: true}

const returning = "id, team_name, payment_screenshot, utr_number, created_at, updated_at"

func scanRegistration(s repository.Scanner) (Registration, error) {
	var r Registration
	err := s.Scan(
		&r.ID,
		&r.TeamName,
		&r.PaymentScreenshot,
		&r.UTRNumber,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// Filters narrows List results.
type Filters struct {
	TeamName *string
	Status   *Status
}

// FiltersFromQuery reads team_name and status. An unknown status is an error.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if n := values.Get("team_name"); n != "" {
		f.TeamName = &n
	}

	if s := values.Get("status"); s != "" {
		status := Status(s)
		if status != StatusPending && status != StatusConfirmed {
			return f, ErrInvalidStatus
		}
		f.Status = &status
	}

	return f, nil
}

// Apply adds filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereContains("team_name", f.TeamName)

	if f.Status != nil {
		pending := *f.Status == StatusPending
		b.WhereNull("payment_screenshot", &pending)
	}
	return b
}
