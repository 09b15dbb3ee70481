package payments

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/regdesk/pkg/handlers"
	"github.com/JaimeStill/regdesk/pkg/routes"
	"github.com/google/uuid"
)

var errMissingFile = errors.New("multipart field \"file\" required")

// Handler exposes the submission workflow over HTTP.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	maxProofSize  int64
}

// NewHandler creates a payments handler. maxUploadSize bounds the whole
// request body; maxProofSize bounds how much of the file is read.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize, maxProofSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "payments"),
		maxUploadSize: maxUploadSize,
		maxProofSize:  maxProofSize,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/payments",
		Tags:        []string{"Payments"},
		Description: "Payment proof submission and confirmation",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.View, OpenAPI: Spec.View},
			{Method: "POST", Pattern: "/{id}/reference", Handler: h.CheckReference, OpenAPI: Spec.CheckReference},
			{Method: "POST", Pattern: "/{id}/proof", Handler: h.Submit, OpenAPI: Spec.Submit},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	view, err := h.sys.View(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

type referenceRequest struct {
	UTRNumber string `json:"utr_number"`
}

func (h *Handler) CheckReference(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req referenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	check, err := h.sys.CheckReference(r.Context(), id, req.UTRNumber)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, check)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errMissingFile)
		return
	}
	defer file.Close()

	// one byte past the limit is enough for validation to reject the file
	data, err := io.ReadAll(io.LimitReader(file, h.maxProofSize+1))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	proof := ProofFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	view, err := h.sys.SubmitProof(r.Context(), id, r.FormValue("utr_number"), proof)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, view)
}
