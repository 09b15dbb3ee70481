// Package routes declares handler groups with their OpenAPI operations and
// registers both onto a ServeMux and a Spec in one pass.
package routes

import (
	"net/http"

	"github.com/JaimeStill/regdesk/pkg/openapi"
)

// Group is a set of routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route binds a method and pattern to a handler. OpenAPI may be nil for
// undocumented routes.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}
