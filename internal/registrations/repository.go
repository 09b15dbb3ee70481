package registrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/regdesk/pkg/pagination"
	"github.com/JaimeStill/regdesk/pkg/query"
	"github.com/JaimeStill/regdesk/pkg/repository"
	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a PostgreSQL-backed registration store.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "registrations"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Registration], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "team_name", "utr_number")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRegistration)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Registration, error) {
	return r.findBy(ctx, "id", id)
}

func (r *repo) FindByReference(ctx context.Context, utr string) (*Registration, error) {
	return r.findBy(ctx, "utr_number", utr)
}

func (r *repo) findBy(ctx context.Context, field string, value any) (*Registration, error) {
	q, args := query.NewBuilder(projection).BuildSingle(field, value)

	reg, err := repository.QueryOne(ctx, r.db, q, args, scanRegistration)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &reg, nil
}

func (r *repo) AttachProof(ctx context.Context, id uuid.UUID, cmd ProofCommand) (*Registration, error) {
	q := `UPDATE registrations
		SET payment_screenshot = $1, utr_number = $2, updated_at = NOW()
		WHERE id = $3 AND payment_screenshot IS NULL
		RETURNING ` + returning

	reg, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Registration, error) {
		reg, err := repository.QueryOne(ctx, tx, q, []any{cmd.PaymentScreenshot, cmd.UTRNumber, id}, scanRegistration)
		if errors.Is(err, sql.ErrNoRows) {
			return reg, attachMiss(ctx, tx, id)
		}
		return reg, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("proof attached", "id", reg.ID, "utr_number", reg.Reference())
	return &reg, nil
}

// attachMiss explains an UPDATE that matched no row: the registration is
// either unknown or already carries proof.
func attachMiss(ctx context.Context, q repository.Querier, id uuid.UUID) error {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM registrations WHERE id = $1)`, id).Scan(&exists)
	switch {
	case err != nil:
		return fmt.Errorf("check registration: %w", err)
	case exists:
		return ErrProofAttached
	default:
		return ErrNotFound
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Registration, error) {
	name := strings.TrimSpace(cmd.TeamName)
	if name == "" {
		return nil, ErrInvalidCommand
	}

	id := cmd.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := `INSERT INTO registrations(id, team_name)
		VALUES($1, $2)
		RETURNING ` + returning

	reg, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Registration, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, name}, scanRegistration)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrExists)
	}

	r.logger.Info("registration created", "id", reg.ID, "team_name", reg.TeamName)
	return &reg, nil
}

func (r *repo) ProofLocations(ctx context.Context) ([]string, error) {
	q := `SELECT payment_screenshot FROM registrations WHERE payment_screenshot IS NOT NULL`

	locations, err := repository.QueryMany(ctx, r.db, q, nil, func(s repository.Scanner) (string, error) {
		var loc string
		err := s.Scan(&loc)
		return loc, err
	})
	if err != nil {
		return nil, fmt.Errorf("query proof locations: %w", err)
	}
	return locations, nil
}
