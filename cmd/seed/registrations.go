package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/regdesk/internal/payments"
	"github.com/google/uuid"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&RegistrationSeeder{})
}

type registrationSeed struct {
	ID                uuid.UUID `json:"id"`
	TeamName          string    `json:"team_name"`
	UTRNumber         string    `json:"utr_number,omitempty"`
	PaymentScreenshot string    `json:"payment_screenshot,omitempty"`
}

type registrationSeedData struct {
	Registrations []registrationSeed `json:"registrations"`
}

// RegistrationSeeder upserts team registrations, optionally with proof
// already attached so the confirmed view can be exercised.
type RegistrationSeeder struct {
	file string
}

func (s *RegistrationSeeder) Name() string {
	return "registrations"
}

func (s *RegistrationSeeder) Description() string {
	return "Seeds team registrations awaiting or holding payment proof"
}

// SetFile replaces the embedded seed data with an external JSON file.
func (s *RegistrationSeeder) SetFile(path string) {
	s.file = path
}

func (s *RegistrationSeeder) Seed(ctx context.Context, tx *sql.Tx) (int, error) {
	data, err := s.load()
	if err != nil {
		return 0, err
	}

	const query = `
		INSERT INTO registrations (id, team_name, utr_number, payment_screenshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			utr_number = EXCLUDED.utr_number,
			payment_screenshot = EXCLUDED.payment_screenshot,
			updated_at = NOW()`

	for _, r := range data.Registrations {
		if _, err := tx.ExecContext(ctx, query, r.ID, r.TeamName, nullable(r.UTRNumber), nullable(r.PaymentScreenshot)); err != nil {
			return 0, fmt.Errorf("save registration %s: %w", r.TeamName, err)
		}
	}
	return len(data.Registrations), nil
}

func (s *RegistrationSeeder) load() (*registrationSeedData, error) {
	var (
		content []byte
		err     error
	)
	if s.file != "" {
		content, err = os.ReadFile(s.file)
	} else {
		content, err = seedFiles.ReadFile("seeds/registrations.json")
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data registrationSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	if err := data.validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

// validate applies the same reference rules the submission workflow does,
// so seeded rows never violate the table constraints.
func (d *registrationSeedData) validate() error {
	for i := range d.Registrations {
		r := &d.Registrations[i]
		if r.ID == uuid.Nil || strings.TrimSpace(r.TeamName) == "" {
			return fmt.Errorf("registration %d: id and team_name required", i)
		}
		if r.UTRNumber == "" {
			continue
		}
		normalized := payments.NormalizeReference(r.UTRNumber, 20)
		if normalized != r.UTRNumber || len(normalized) < 12 {
			return fmt.Errorf("registration %s: invalid utr_number %q", r.TeamName, r.UTRNumber)
		}
		if r.PaymentScreenshot == "" {
			return fmt.Errorf("registration %s: utr_number without payment_screenshot", r.TeamName)
		}
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
