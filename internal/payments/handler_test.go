package payments

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/regdesk/pkg/logging"
	"github.com/google/uuid"
)

func newTestMux(fx *fixture) *http.ServeMux {
	cfg := fx.svc.cfg
	h := NewHandler(fx.svc, logging.Discard(), 10<<20, cfg.MaxProofSizeBytes())

	mux := http.NewServeMux()
	for _, r := range h.Routes().Routes {
		mux.HandleFunc(r.Method+" /payments"+r.Pattern, r.Handler)
	}
	return mux
}

func proofRequest(t *testing.T, id, utr string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("utr_number", utr); err != nil {
		t.Fatal(err)
	}
	if data != nil {
		part, err := w.CreateFormFile("file", "receipt.png")
		if err != nil {
			t.Fatal(err)
		}
		part.Write(data)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/payments/"+id+"/proof", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandler_Submit(t *testing.T) {
	fx := newFixture(t)
	mux := newTestMux(fx)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, proofRequest(t, fx.reg.ID.String(), "abc-123-XYZ999999", pngBytes(4096)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d: %s", rec.Code, rec.Body.String())
	}

	var view View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.State != StateConfirmed || !view.Celebrate || view.UTRNumber != "ABC123XYZ999999" {
		t.Errorf("view = %+v", view)
	}
	if !strings.HasSuffix(view.PaymentScreenshot, ".png") {
		t.Errorf("PaymentScreenshot = %q", view.PaymentScreenshot)
	}

	// a second submission for the same registration conflicts
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, proofRequest(t, fx.reg.ID.String(), "ZYXWVU654321", pngBytes(4096)))
	if rec.Code != http.StatusConflict {
		t.Errorf("resubmit code = %d, want 409", rec.Code)
	}
	if fx.objects.createCount() != 1 {
		t.Errorf("creates = %d, want 1", fx.objects.createCount())
	}
}

func TestHandler_SubmitErrors(t *testing.T) {
	fx := newFixture(t, withReference("TAKEN1234567"))
	mux := newTestMux(fx)
	id := fx.reg.ID.String()

	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
	}{
		{"bad id", proofRequest(t, "nope", "ABCDEF123456", pngBytes(64)), http.StatusBadRequest},
		{"missing file", proofRequest(t, id, "ABCDEF123456", nil), http.StatusBadRequest},
		{"not an image", proofRequest(t, id, "ABCDEF123456", []byte("plain text receipt")), http.StatusBadRequest},
		{"short reference", proofRequest(t, id, "ABC-123", pngBytes(64)), http.StatusBadRequest},
		{"oversized", proofRequest(t, id, "ABCDEF123456", pngBytes(6_000_000)), http.StatusBadRequest},
		{"duplicate reference", proofRequest(t, id, "taken1234567", pngBytes(64)), http.StatusConflict},
		{"unknown registration", proofRequest(t, uuid.NewString(), "ABCDEF123456", pngBytes(64)), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, tt.req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}

	if fx.objects.createCount() != 0 {
		t.Errorf("creates = %d, want 0", fx.objects.createCount())
	}
}

func TestHandler_ViewAndReference(t *testing.T) {
	fx := newFixture(t, withReference("TAKEN1234567"))
	mux := newTestMux(fx)
	id := fx.reg.ID.String()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/"+id, nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"state":"pending"`) {
		t.Errorf("view: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing view code = %d", rec.Code)
	}

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"unique", `{"utr_number":"free-1234-5678"}`, http.StatusOK},
		{"short", `{"utr_number":"ab"}`, http.StatusOK},
		{"taken", `{"utr_number":"TAKEN1234567"}`, http.StatusConflict},
		{"bad json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/payments/"+id+"/reference", strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestHandler_CheckReferenceUnknownRegistration(t *testing.T) {
	mux := newTestMux(newFixture(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/"+uuid.NewString()+"/reference", strings.NewReader(`{"utr_number":"free-1234-5678"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}
