package payments

import (
	"context"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/google/uuid"
)

// Records is the part of the registration store the workflow touches.
// registrations.System satisfies it.
type Records interface {
	Find(ctx context.Context, id uuid.UUID) (*registrations.Registration, error)
	FindByReference(ctx context.Context, utr string) (*registrations.Registration, error)
	AttachProof(ctx context.Context, id uuid.UUID, cmd registrations.ProofCommand) (*registrations.Registration, error)
}

// Objects is the part of object storage the workflow touches.
// storage.System satisfies it.
type Objects interface {
	// Create must fail rather than overwrite an existing key.
	Create(ctx context.Context, key string, data []byte) error
	PublicURL(key string) string
}
