package api

import (
	"net/http"

	"github.com/JaimeStill/regdesk/internal/config"
	"github.com/JaimeStill/regdesk/internal/payments"
	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/JaimeStill/regdesk/pkg/openapi"
	"github.com/JaimeStill/regdesk/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	registrationsHandler := registrations.NewHandler(domain.Registrations, runtime.Logger, runtime.Pagination)
	paymentsHandler := payments.NewHandler(
		domain.Payments,
		runtime.Logger,
		cfg.Storage.MaxUploadSizeBytes(),
		cfg.Payments.MaxProofSizeBytes(),
	)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		registrationsHandler.Routes(),
		paymentsHandler.Routes(),
	)
}
