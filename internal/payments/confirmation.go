package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/google/uuid"
)

type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
)

// View is the renderable snapshot of a registration's payment status.
type View struct {
	RegistrationID    uuid.UUID `json:"registration_id"`
	TeamName          string    `json:"team_name"`
	State             State     `json:"state"`
	PaymentScreenshot string    `json:"payment_screenshot,omitempty"`
	UTRNumber         string    `json:"utr_number,omitempty"`
	Celebrate         bool      `json:"celebrate"`
}

// Confirmation tracks pending -> confirmed for one registration view.
// The only guard is a non-empty screenshot location read from the record
// store, and there is no way back to pending.
type Confirmation struct {
	id        uuid.UUID
	records   Records
	logger    *slog.Logger
	celebrate func()

	mu         sync.Mutex
	state      State
	reg        *registrations.Registration
	celebrated bool
}

// Mount loads the registration once. A registration that already carries
// proof is confirmed immediately without celebrating.
func (c *Confirmation) Mount(ctx context.Context) error {
	reg, err := c.load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reg = reg
	if reg.HasProof() {
		c.state = StateConfirmed
	}
	return nil
}

// Submitted re-reads the record after a successful submission and confirms
// from the stored location rather than the client-held one. The celebrate
// hook fires at most once per Confirmation.
func (c *Confirmation) Submitted(ctx context.Context) error {
	reg, err := c.load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.reg = reg
	fire := false
	if reg.HasProof() && c.state == StatePending {
		c.state = StateConfirmed
		if !c.celebrated {
			c.celebrated = true
			fire = true
		}
	}
	c.mu.Unlock()

	if !reg.HasProof() {
		c.logger.Warn("submission reported but no proof location stored", "registration_id", c.id)
	}
	if fire && c.celebrate != nil {
		c.celebrate()
	}
	return nil
}

func (c *Confirmation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Confirmation) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		RegistrationID: c.id,
		State:          c.state,
		Celebrate:      c.celebrated,
	}
	if c.reg != nil {
		v.TeamName = c.reg.TeamName
		v.PaymentScreenshot = c.reg.ProofLocation()
		v.UTRNumber = c.reg.Reference()
	}
	return v
}

func (c *Confirmation) load(ctx context.Context) (*registrations.Registration, error) {
	reg, err := c.records.Find(ctx, c.id)
	if err != nil {
		if errors.Is(err, registrations.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load registration %s: %w", c.id, err)
	}
	return reg, nil
}
