package routes

import (
	"net/http"

	"github.com/JaimeStill/regdesk/pkg/openapi"
)

// Register mounts every group on mux relative to the module root and documents
// each route in spec under basePath. spec may be nil.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, g := range groups {
		register(mux, basePath, "", spec, g)
	}
}

func register(mux *http.ServeMux, basePath, parent string, spec *openapi.Spec, g Group) {
	prefix := parent + g.Prefix

	if spec != nil && len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, r := range g.Routes {
		pattern := prefix + r.Pattern
		mux.HandleFunc(r.Method+" "+pattern, r.Handler)

		if spec == nil || r.OpenAPI == nil {
			continue
		}
		if len(r.OpenAPI.Tags) == 0 {
			r.OpenAPI.Tags = g.Tags
		}
		spec.AddOperation(basePath+pattern, r.Method, r.OpenAPI)
	}

	for _, child := range g.Children {
		if len(child.Tags) == 0 {
			child.Tags = g.Tags
		}
		register(mux, basePath, prefix, spec, child)
	}
}
