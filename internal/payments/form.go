package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/google/uuid"
)

// Receipt describes a completed submission.
type Receipt struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	Key            string    `json:"key"`
	Location       string    `json:"location"`
	UTRNumber      string    `json:"utr_number"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// CompletionFunc is invoked once after the record write succeeds.
type CompletionFunc func(ctx context.Context, receipt *Receipt)

// Form is one submission attempt for one registration. Operations on a form
// never overlap: a call made while another is in flight fails with ErrBusy.
// After a successful Submit the form is frozen and every mutator returns
// ErrSubmitted.
type Form struct {
	id         uuid.UUID
	records    Records
	objects    Objects
	cfg        Config
	logger     *slog.Logger
	onComplete CompletionFunc
	now        func() time.Time

	mu        sync.Mutex
	busy      bool
	submitted bool
	reference string
	unique    bool
	file      *ProofFile
}

// Reference returns the current normalized reference.
func (f *Form) Reference() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reference
}

// Submitted reports whether the form reached its terminal state.
func (f *Form) Submitted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitted
}

// Ready reports whether Submit would be offered: a valid file is selected,
// the reference is long enough and passed its last uniqueness check, and
// nothing is in flight.
func (f *Form) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file != nil &&
		len(f.reference) >= f.cfg.MinReferenceLength &&
		f.unique &&
		!f.busy &&
		!f.submitted
}

// SetReference normalizes raw and stores it. Once the value is long enough
// the uniqueness check runs; a conflict returns ErrDuplicateReference and the
// form stays not ready. Short values are accepted without a remote call.
func (f *Form) SetReference(ctx context.Context, raw string) (string, error) {
	if err := f.acquire(); err != nil {
		return "", err
	}
	defer f.release()

	ref := NormalizeReference(raw, f.cfg.MaxReferenceLength)

	f.mu.Lock()
	f.reference = ref
	f.unique = false
	f.mu.Unlock()

	if len(ref) < f.cfg.MinReferenceLength {
		return ref, nil
	}

	if err := f.checkUnique(ctx, ref); err != nil {
		return ref, err
	}

	f.mu.Lock()
	f.unique = f.reference == ref
	f.mu.Unlock()
	return ref, nil
}

// SelectFile validates and stores file. An invalid file clears the selection.
func (f *Form) SelectFile(file ProofFile) error {
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()

	err := validateFile(&file, f.cfg.MaxProofSizeBytes())

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.file = nil
		return err
	}
	f.file = &file
	return nil
}

// Submit runs the submission steps in order, stopping at the first failure:
// local validation, the already-submitted guard, the uniqueness check, the
// create-only upload, public location resolution, and the single record write.
// The completion callback runs only after the record write succeeds.
func (f *Form) Submit(ctx context.Context) (*Receipt, error) {
	if err := f.acquire(); err != nil {
		return nil, err
	}
	done := false
	defer func() {
		if !done {
			f.release()
		}
	}()

	f.mu.Lock()
	file, ref := f.file, f.reference
	f.mu.Unlock()

	if err := validateFile(file, f.cfg.MaxProofSizeBytes()); err != nil {
		return nil, err
	}
	if err := validateReference(ref, f.cfg.MinReferenceLength); err != nil {
		return nil, err
	}

	if err := f.guardPending(ctx); err != nil {
		return nil, err
	}

	if err := f.checkUnique(ctx, ref); err != nil {
		f.mu.Lock()
		f.unique = false
		f.mu.Unlock()
		return nil, err
	}

	submittedAt := f.now()
	key := fmt.Sprintf("%s/%s-%d.%s", f.cfg.ScreenshotPrefix, f.id, submittedAt.UnixMilli(), extension(file.Filename))

	if err := f.objects.Create(ctx, key, file.Data); err != nil {
		f.logger.Error("screenshot upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	location := f.objects.PublicURL(key)

	_, err := f.records.AttachProof(ctx, f.id, registrations.ProofCommand{
		PaymentScreenshot: location,
		UTRNumber:         ref,
	})
	if err != nil {
		// the stored object stays in place and is unreferenced until reconciled
		f.logger.Error("record update failed after upload", "key", key, "location", location, "error", err)
		return nil, persistenceError(err)
	}

	receipt := &Receipt{
		RegistrationID: f.id,
		Key:            key,
		Location:       location,
		UTRNumber:      ref,
		SubmittedAt:    submittedAt,
	}

	f.mu.Lock()
	f.submitted = true
	f.busy = false
	f.mu.Unlock()
	done = true

	f.logger.Info("payment proof submitted", "key", key, "utr_number", ref)

	if f.onComplete != nil {
		f.onComplete(ctx, receipt)
	}
	return receipt, nil
}

// checkUnique fails closed: any lookup error other than "no row" counts as a conflict.
func (f *Form) checkUnique(ctx context.Context, ref string) error {
	existing, err := f.records.FindByReference(ctx, ref)
	switch {
	case errors.Is(err, registrations.ErrNotFound):
		return nil
	case err != nil:
		f.logger.Warn("uniqueness check failed, treating reference as taken", "utr_number", ref, "error", err)
		return fmt.Errorf("%w: lookup failed: %w", ErrDuplicateReference, err)
	case existing.ID == f.id:
		return nil
	default:
		return ErrDuplicateReference
	}
}

func (f *Form) guardPending(ctx context.Context) error {
	reg, err := f.records.Find(ctx, f.id)
	if err != nil {
		if errors.Is(err, registrations.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: load registration: %w", ErrPersistence, err)
	}
	if reg.HasProof() {
		return ErrAlreadySubmitted
	}
	return nil
}

func (f *Form) acquire() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitted {
		return ErrSubmitted
	}
	if f.busy {
		return ErrBusy
	}
	f.busy = true
	return nil
}

func (f *Form) release() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

func persistenceError(err error) error {
	switch {
	case errors.Is(err, registrations.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrPersistence, ErrDuplicateReference)
	case errors.Is(err, registrations.ErrProofAttached):
		return fmt.Errorf("%w: %w", ErrPersistence, ErrAlreadySubmitted)
	case errors.Is(err, registrations.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrPersistence, ErrNotFound)
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
