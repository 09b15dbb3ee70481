package config

import (
	"github.com/JaimeStill/regdesk/internal/payments"
	"github.com/JaimeStill/regdesk/pkg/database"
	"github.com/JaimeStill/regdesk/pkg/logging"
	"github.com/JaimeStill/regdesk/pkg/middleware"
	"github.com/JaimeStill/regdesk/pkg/openapi"
	"github.com/JaimeStill/regdesk/pkg/pagination"
	"github.com/JaimeStill/regdesk/pkg/storage"
)

var databaseEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSLMODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	BasePath:      "STORAGE_BASE_PATH",
	MaxUploadSize: "STORAGE_MAX_UPLOAD_SIZE",
	PublicURL:     "STORAGE_PUBLIC_URL",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
}

var paymentsEnv = &payments.ConfigEnv{
	MinReferenceLength: "PAYMENTS_MIN_REFERENCE_LENGTH",
	MaxReferenceLength: "PAYMENTS_MAX_REFERENCE_LENGTH",
	MaxProofSize:       "PAYMENTS_MAX_PROOF_SIZE",
	ScreenshotPrefix:   "PAYMENTS_SCREENSHOT_PREFIX",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "API_CORS_ENABLED",
	Origins:          "API_CORS_ORIGINS",
	AllowedMethods:   "API_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "API_CORS_ALLOWED_HEADERS",
	AllowCredentials: "API_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "API_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "API_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "API_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "API_OPENAPI_TITLE",
	Description: "API_OPENAPI_DESCRIPTION",
}
