// Package files serves stored objects at the public location the storage
// system hands out, so screenshot URLs saved on registrations resolve.
package files

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JaimeStill/regdesk/pkg/handlers"
	"github.com/JaimeStill/regdesk/pkg/middleware"
	"github.com/JaimeStill/regdesk/pkg/module"
	"github.com/JaimeStill/regdesk/pkg/storage"
)

// cacheControl matches the max-age stored objects were uploaded with.
const cacheControl = "public, max-age=3600"

// contentSecurityPolicy keeps a served object from running script on this origin.
const contentSecurityPolicy = "default-src 'none'; sandbox"

type Handler struct {
	store  storage.System
	logger *slog.Logger
}

func NewHandler(store storage.System, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("handler", "files"),
	}
}

// NewModule mounts the file handler at prefix.
func NewModule(prefix string, store storage.System, logger *slog.Logger) *module.Module {
	h := NewHandler(store, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{key...}", h.Serve)
	mux.HandleFunc("HEAD /{key...}", h.Serve)

	m := module.New(prefix, mux)
	m.Use(middleware.Logger(h.logger))
	return m
}

// Serve handles GET /{key...} and writes the raw object.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	data, err := h.store.Retrieve(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	// only images render inline; anything else is downloaded
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		ct = "application/octet-stream"
		w.Header().Set("Content-Disposition", "attachment")
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		w.Write(data)
	}
}

func mapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
