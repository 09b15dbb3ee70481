package main

import (
	"testing"

	"github.com/google/uuid"
)

func TestEmbeddedSeedsValid(t *testing.T) {
	data, err := (&RegistrationSeeder{}).load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if len(data.Registrations) == 0 {
		t.Fatal("no embedded registrations")
	}

	seen := make(map[string]bool)
	for _, r := range data.Registrations {
		if r.UTRNumber == "" {
			continue
		}
		if seen[r.UTRNumber] {
			t.Errorf("duplicate utr_number %q", r.UTRNumber)
		}
		seen[r.UTRNumber] = true
	}
}

func TestSeedDataValidate(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		reg  registrationSeed
		ok   bool
	}{
		{"pending", registrationSeed{ID: id, TeamName: "A"}, true},
		{"confirmed", registrationSeed{ID: id, TeamName: "A", UTRNumber: "ABCDEF123456", PaymentScreenshot: "/files/x.png"}, true},
		{"missing id", registrationSeed{TeamName: "A"}, false},
		{"blank team", registrationSeed{ID: id, TeamName: " "}, false},
		{"lowercase utr", registrationSeed{ID: id, TeamName: "A", UTRNumber: "abcdef123456", PaymentScreenshot: "/files/x.png"}, false},
		{"short utr", registrationSeed{ID: id, TeamName: "A", UTRNumber: "ABC123", PaymentScreenshot: "/files/x.png"}, false},
		{"utr without proof", registrationSeed{ID: id, TeamName: "A", UTRNumber: "ABCDEF123456"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := registrationSeedData{Registrations: []registrationSeed{tt.reg}}
			err := d.validate()
			if (err == nil) != tt.ok {
				t.Errorf("validate() error = %v, want ok = %v", err, tt.ok)
			}
		})
	}
}
