package api

import (
	"github.com/JaimeStill/regdesk/internal/payments"
	"github.com/JaimeStill/regdesk/internal/registrations"
)

// Domain holds the domain systems behind the API.
type Domain struct {
	Registrations registrations.System
	Payments      payments.System
}

// NewDomain creates the domain systems from the API runtime. The payments
// workflow reads and writes through the registrations system and stores
// screenshots in object storage.
func NewDomain(runtime *Runtime) *Domain {
	registrationsSys := registrations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	paymentsSys := payments.New(
		registrationsSys,
		runtime.Storage,
		runtime.Payments,
		runtime.Logger,
	)

	return &Domain{
		Registrations: registrationsSys,
		Payments:      paymentsSys,
	}
}
