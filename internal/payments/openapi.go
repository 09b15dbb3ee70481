package payments

import "github.com/JaimeStill/regdesk/pkg/openapi"

type spec struct {
	View           *openapi.Operation
	CheckReference *openapi.Operation
	Submit         *openapi.Operation
}

var Spec = spec{
	View: &openapi.Operation{
		Summary:     "Payment status",
		Description: "Load the confirmation view. Registrations with stored proof are confirmed.",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Registration ID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Payment view", "PaymentView"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	CheckReference: &openapi.Operation{
		Summary:     "Check UTR number",
		Description: "Normalize a UTR number and check it is not used by another registration",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Registration ID"),
		},
		RequestBody: openapi.RequestBodyJSON("ReferenceRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Normalized reference", "ReferenceCheck"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Submit: &openapi.Operation{
		Summary:     "Submit payment proof",
		Description: "Upload a payment screenshot with its UTR number and attach both to the registration",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Registration ID"),
		},
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"file":       {Type: "string", Format: "binary", Description: "Screenshot image, at most 5 MiB"},
							"utr_number": {Type: "string", Description: "Transaction reference, 12 to 20 letters or digits"},
						},
						Required: []string{"file", "utr_number"},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Proof stored and payment confirmed", "PaymentView"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
			413: {Description: "Request body too large"},
			500: openapi.ResponseRef("ServerError"),
			502: openapi.ResponseRef("BadGateway"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	minLen, maxLen := 1, 64
	return map[string]*openapi.Schema{
		"PaymentView": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"registration_id":    {Type: "string", Format: "uuid"},
				"team_name":          {Type: "string"},
				"state":              {Type: "string", Enum: []string{string(StatePending), string(StateConfirmed)}},
				"payment_screenshot": {Type: "string", Description: "Stored screenshot URL"},
				"utr_number":         {Type: "string"},
				"celebrate":          {Type: "boolean", Description: "True only on the response that confirmed the payment"},
			},
		},
		"ReferenceRequest": {
			Type:     "object",
			Required: []string{"utr_number"},
			Properties: map[string]*openapi.Schema{
				"utr_number": {Type: "string", MinLength: &minLen, MaxLength: &maxLen},
			},
		},
		"ReferenceCheck": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"utr_number": {Type: "string", Description: "Normalized reference"},
				"length":     {Type: "integer"},
				"min_length": {Type: "integer"},
				"complete":   {Type: "boolean"},
				"unique":     {Type: "boolean"},
			},
		},
	}
}
