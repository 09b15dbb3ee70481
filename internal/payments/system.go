// Package payments implements the payment-proof submission workflow: reference
// validation, a create-only screenshot upload, a single record write, and
// the confirmation view that reconciles against the record store.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/google/uuid"
)

// System exposes the workflow to transports. Form and Confirmation are the
// stateful pieces; the remaining methods drive them for one request.
type System interface {
	NewForm(id uuid.UUID, onComplete CompletionFunc) *Form
	NewConfirmation(id uuid.UUID, onCelebrate func()) *Confirmation

	// View mounts a confirmation and returns its snapshot.
	View(ctx context.Context, id uuid.UUID) (*View, error)

	// CheckReference normalizes raw and checks it against other registrations.
	// An unknown id is ErrNotFound.
	CheckReference(ctx context.Context, id uuid.UUID, raw string) (*ReferenceCheck, error)

	// SubmitProof runs a full submission and returns the confirmed view.
	// ErrRefresh means the proof is stored but the view could not be reloaded.
	SubmitProof(ctx context.Context, id uuid.UUID, raw string, file ProofFile) (*View, error)
}

// ReferenceCheck reports the state of a reference after normalization.
type ReferenceCheck struct {
	UTRNumber string `json:"utr_number"`
	Length    int    `json:"length"`
	MinLength int    `json:"min_length"`
	Complete  bool   `json:"complete"`
	Unique    bool   `json:"unique"`
}

type service struct {
	records Records
	objects Objects
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

// New wires the workflow to its record store and object storage. cfg must be finalized.
func New(records Records, objects Objects, cfg Config, logger *slog.Logger) System {
	return &service{
		records: records,
		objects: objects,
		cfg:     cfg,
		logger:  logger.With("system", "payments"),
		now:     time.Now,
	}
}

func (s *service) NewForm(id uuid.UUID, onComplete CompletionFunc) *Form {
	return &Form{
		id:         id,
		records:    s.records,
		objects:    s.objects,
		cfg:        s.cfg,
		logger:     s.logger.With("registration_id", id),
		onComplete: onComplete,
		now:        s.now,
	}
}

func (s *service) NewConfirmation(id uuid.UUID, onCelebrate func()) *Confirmation {
	return &Confirmation{
		id:        id,
		records:   s.records,
		logger:    s.logger,
		celebrate: onCelebrate,
		state:     StatePending,
	}
}

func (s *service) View(ctx context.Context, id uuid.UUID) (*View, error) {
	c := s.NewConfirmation(id, nil)
	if err := c.Mount(ctx); err != nil {
		return nil, err
	}
	v := c.View()
	return &v, nil
}

func (s *service) CheckReference(ctx context.Context, id uuid.UUID, raw string) (*ReferenceCheck, error) {
	if _, err := s.records.Find(ctx, id); err != nil {
		if errors.Is(err, registrations.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load registration: %w", ErrPersistence, err)
	}

	form := s.NewForm(id, nil)

	ref, err := form.SetReference(ctx, raw)
	check := &ReferenceCheck{
		UTRNumber: ref,
		Length:    len(ref),
		MinLength: s.cfg.MinReferenceLength,
		Complete:  len(ref) >= s.cfg.MinReferenceLength,
	}
	if err != nil {
		return check, err
	}
	check.Unique = check.Complete
	return check, nil
}

func (s *service) SubmitProof(ctx context.Context, id uuid.UUID, raw string, file ProofFile) (*View, error) {
	conf := s.NewConfirmation(id, func() {
		s.logger.Info("payment confirmed", "registration_id", id)
	})
	var refreshErr error
	form := s.NewForm(id, func(ctx context.Context, r *Receipt) {
		refreshErr = conf.Submitted(ctx)
	})

	// local checks first so invalid input never reaches the stores
	if err := form.SelectFile(file); err != nil {
		return nil, err
	}
	if err := validateReference(NormalizeReference(raw, s.cfg.MaxReferenceLength), s.cfg.MinReferenceLength); err != nil {
		return nil, err
	}

	if err := conf.Mount(ctx); err != nil {
		return nil, err
	}
	if conf.State() == StateConfirmed {
		return nil, ErrAlreadySubmitted
	}

	if _, err := form.SetReference(ctx, raw); err != nil {
		return nil, err
	}
	if _, err := form.Submit(ctx); err != nil {
		return nil, err
	}
	if refreshErr != nil {
		s.logger.Error("confirmation refresh failed", "registration_id", id, "error", refreshErr)
		return nil, fmt.Errorf("%w: %w", ErrRefresh, refreshErr)
	}

	v := conf.View()
	return &v, nil
}
