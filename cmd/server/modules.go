package main

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/regdesk/internal/api"
	"github.com/JaimeStill/regdesk/internal/config"
	"github.com/JaimeStill/regdesk/internal/files"
	"github.com/JaimeStill/regdesk/internal/infrastructure"
	"github.com/JaimeStill/regdesk/pkg/module"
)

type Modules struct {
	API *module.Module
	// Files is nil when stored objects are served from an external public URL.
	Files *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	modules := &Modules{API: apiModule}

	if prefix, ok := filesPrefix(cfg.Storage.PublicURL); ok {
		modules.Files = files.NewModule(prefix, infra.Storage, infra.Logger.With("module", "files"))
	} else {
		infra.Logger.Info("stored objects served externally", "public_url", cfg.Storage.PublicURL)
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	if m.Files != nil {
		router.Mount(m.Files)
	}
}

// filesPrefix reports whether publicURL is a local single-segment path
// such as /files that this server should answer.
func filesPrefix(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, "/") || strings.HasPrefix(publicURL, "//") {
		return "", false
	}
	prefix := strings.TrimSuffix(publicURL, "/")
	if prefix == "" || strings.Contains(prefix[1:], "/") {
		return "", false
	}
	return prefix, true
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
