// Package registrations is the record store for team registrations and the
// proof-of-payment fields attached to them.
package registrations

import (
	"context"

	"github.com/JaimeStill/regdesk/pkg/pagination"
	"github.com/google/uuid"
)

// System reads registrations and attaches proof of payment.
type System interface {
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Registration], error)

	// Find returns ErrNotFound when no row has id.
	Find(ctx context.Context, id uuid.UUID) (*Registration, error)

	// FindByReference returns ErrNotFound when no row carries utr.
	FindByReference(ctx context.Context, utr string) (*Registration, error)

	// AttachProof writes the screenshot location and UTR in one statement.
	// Only a registration without proof is updated; one that already has
	// proof yields ErrProofAttached. A UTR held by another row yields ErrDuplicate.
	AttachProof(ctx context.Context, id uuid.UUID, cmd ProofCommand) (*Registration, error)

	// Create inserts a registration. Used by seeding and tooling.
	Create(ctx context.Context, cmd CreateCommand) (*Registration, error)

	// ProofLocations returns every attached screenshot location.
	ProofLocations(ctx context.Context) ([]string, error)
}
