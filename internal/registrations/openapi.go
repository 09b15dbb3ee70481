package registrations

import "github.com/JaimeStill/regdesk/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Find   *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List registrations",
		Description: "List registrations with pagination, search, and payment status filter",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in team name and UTR number", false),
			openapi.QueryParam("sort", "string", "Comma-separated fields, '-' prefix for descending", false),
			openapi.QueryParam("team_name", "string", "Filter by team name (contains)", false),
			openapi.QueryParam("status", "string", "pending or confirmed", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Registrations page", "RegistrationPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create registration",
		Description: "Register a team. The registration starts pending until payment proof is attached.",
		RequestBody: openapi.RequestBodyJSON("CreateRegistration", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created registration", "Registration"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Find registration",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Registration ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Registration", "Registration"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Registration": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                 {Type: "string", Format: "uuid"},
				"team_name":          {Type: "string"},
				"payment_screenshot": {Type: "string", Nullable: true, Description: "Public screenshot URL once proof is attached"},
				"utr_number":         {Type: "string", Nullable: true, Description: "Bank transaction reference"},
				"created_at":         {Type: "string", Format: "date-time"},
				"updated_at":         {Type: "string", Format: "date-time"},
			},
		},
		"CreateRegistration": {
			Type:     "object",
			Required: []string{"team_name"},
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid", Description: "Optional client-chosen ID"},
				"team_name": {Type: "string"},
			},
		},
		"RegistrationPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Registration")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
