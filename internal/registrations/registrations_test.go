package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/JaimeStill/regdesk/pkg/logging"
	"github.com/JaimeStill/regdesk/pkg/pagination"
	"github.com/JaimeStill/regdesk/pkg/query"
	"github.com/google/uuid"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"exists", ErrExists, http.StatusConflict},
		{"proof attached", ErrProofAttached, http.StatusConflict},
		{"invalid command", ErrInvalidCommand, http.StatusBadRequest},
		{"invalid status", ErrInvalidStatus, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("find: %w", ErrNotFound), http.StatusNotFound},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.expected {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestRegistration_Status(t *testing.T) {
	empty := ""
	loc := "/files/screenshots/x.png"

	tests := []struct {
		name string
		shot *string
		want Status
	}{
		{"nil location", nil, StatusPending},
		{"empty location", &empty, StatusPending},
		{"location present", &loc, StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Registration{PaymentScreenshot: tt.shot}
			if got := r.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilters_Apply(t *testing.T) {
	tests := []struct {
		raw      string
		wantSQL  string
		wantArgs []any
		wantErr  error
	}{
		{"", "SELECT COUNT(*) FROM public.registrations r", nil, nil},
		{"status=pending", "SELECT COUNT(*) FROM public.registrations r WHERE r.payment_screenshot IS NULL", nil, nil},
		{"status=confirmed&team_name=byte",
			"SELECT COUNT(*) FROM public.registrations r WHERE r.team_name ILIKE $1 AND r.payment_screenshot IS NOT NULL",
			[]any{"%byte%"}, nil},
		{"status=paid", "", nil, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.raw)
			f, err := FiltersFromQuery(values)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FiltersFromQuery() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			sql, args := f.Apply(query.NewBuilder(projection)).BuildCount()
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != len(tt.wantArgs) || (len(args) > 0 && !reflect.DeepEqual(args, tt.wantArgs)) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

type stubSystem struct {
	System
	regs     map[uuid.UUID]*Registration
	lastPage pagination.PageRequest
	lastF    Filters
}

func (s *stubSystem) Find(_ context.Context, id uuid.UUID) (*Registration, error) {
	if r, ok := s.regs[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (s *stubSystem) List(_ context.Context, page pagination.PageRequest, f Filters) (*pagination.PageResult[Registration], error) {
	s.lastPage, s.lastF = page, f
	items := make([]Registration, 0, len(s.regs))
	for _, r := range s.regs {
		items = append(items, *r)
	}
	result := pagination.NewPageResult(items, len(items), page.Page, page.PageSize)
	return &result, nil
}

func (s *stubSystem) Create(_ context.Context, cmd CreateCommand) (*Registration, error) {
	if cmd.TeamName == "" {
		return nil, ErrInvalidCommand
	}
	if _, ok := s.regs[cmd.ID]; ok {
		return nil, ErrExists
	}
	reg := &Registration{ID: cmd.ID, TeamName: cmd.TeamName}
	s.regs[cmd.ID] = reg
	return reg, nil
}

func TestHandler_Create(t *testing.T) {
	id := uuid.New()
	sys := &stubSystem{regs: map[uuid.UUID]*Registration{}}
	h := NewHandler(sys, logging.Discard(), pagination.Config{DefaultPageSize: 25, MaxPageSize: 100})

	mux := http.NewServeMux()
	for _, r := range h.Routes().Routes {
		mux.HandleFunc(r.Method+" /registrations"+r.Pattern, r.Handler)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"created", `{"id":"` + id.String() + `","team_name":"Null Pointers"}`, http.StatusCreated},
		{"duplicate id", `{"id":"` + id.String() + `","team_name":"Again"}`, http.StatusConflict},
		{"missing team", `{"team_name":""}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(tt.body)))
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestHandler(t *testing.T) {
	id := uuid.New()
	sys := &stubSystem{regs: map[uuid.UUID]*Registration{
		id: {ID: id, TeamName: "Null Pointers"},
	}}
	h := NewHandler(sys, logging.Discard(), pagination.Config{DefaultPageSize: 25, MaxPageSize: 100})

	mux := http.NewServeMux()
	for _, r := range h.Routes().Routes {
		mux.HandleFunc(r.Method+" /registrations"+r.Pattern, r.Handler)
	}

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"list", "/registrations?status=confirmed&page_size=500", http.StatusOK},
		{"list bad status", "/registrations?status=paid", http.StatusBadRequest},
		{"find", "/registrations/" + id.String(), http.StatusOK},
		{"find missing", "/registrations/" + uuid.NewString(), http.StatusNotFound},
		{"find bad id", "/registrations/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	if sys.lastPage.PageSize != 100 {
		t.Errorf("page size = %d, want clamped 100", sys.lastPage.PageSize)
	}
	if sys.lastF.Status == nil || *sys.lastF.Status != StatusConfirmed {
		t.Errorf("status filter = %v", sys.lastF.Status)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations/"+id.String(), nil))
	var got Registration
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.TeamName != "Null Pointers" || got.PaymentScreenshot != nil {
		t.Errorf("body = %+v", got)
	}
}
