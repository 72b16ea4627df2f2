package permissions

import "github.com/JaimeStill/facility-management/pkg/openapi"

// spec holds OpenAPI operation definitions for the permissions domain.
type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
	Check  *openapi.Operation
	Levels *openapi.Operation
}

var levelEnum = []string{string(View), string(Manage), string(Admin)}

// Spec contains OpenAPI operation definitions for all permission endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List grants",
		Description: "Staff see every grant. Other callers see their own grants, or all grants on a facility they administer when filtering by facility_id",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
			openapi.QueryParam("user_id", "string", "Filter by grantee", false),
			openapi.QueryParam("facility_id", "string", "Filter by facility", false),
			openapi.QueryParam("level", "string", "Filter by level", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of grants", "GrantPageResult"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Grant access",
		Description: "Requires staff or admin permission on the facility",
		Security:    openapi.Bearer(),
		RequestBody: openapi.RequestBodyJSON("CreateGrantCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Grant created", "Grant"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Find: &openapi.Operation{
		Summary:  "Get grant by ID",
		Security: openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Grant UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Grant", "Grant"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:  "Change grant level",
		Security: openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Grant UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateGrantCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Grant updated", "Grant"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:  "Revoke grant",
		Security: openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Grant UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Grant revoked"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Check: &openapi.Operation{
		Summary:     "Check permission",
		Description: "Reports whether the caller holds at least level on the facility",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("facility_id", "string", "Facility UUID", true),
			openapi.QueryParam("level", "string", "Required level (default view)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Check result", "CheckResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Levels: &openapi.Operation{
		Summary:  "List permission levels",
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Levels in ascending order",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string", Enum: levelEnum}}},
				},
			},
		},
	},
}

// Schemas returns the permissions domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Grant": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":          {Type: "string", Format: "uuid"},
				"user_id":     {Type: "string", Format: "uuid"},
				"facility_id": {Type: "string", Format: "uuid"},
				"level":       {Type: "string", Enum: levelEnum},
				"granted_by":  {Type: "string", Format: "uuid"},
				"created_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CreateGrantCommand": {
			Type:     "object",
			Required: []string{"user_id", "facility_id", "level"},
			Properties: map[string]*openapi.Property{
				"user_id":     {Type: "string", Format: "uuid"},
				"facility_id": {Type: "string", Format: "uuid"},
				"level":       {Type: "string", Enum: levelEnum},
			},
		},
		"UpdateGrantCommand": {
			Type:     "object",
			Required: []string{"level"},
			Properties: map[string]*openapi.Property{
				"level": {Type: "string", Enum: levelEnum},
			},
		},
		"CheckResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"facility_id": {Type: "string", Format: "uuid"},
				"level":       {Type: "string", Enum: levelEnum},
				"allowed":     {Type: "boolean"},
			},
		},
		"GrantPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("Grant")},
				"total":       {Type: "integer", Description: "Total number of results"},
				"page":        {Type: "integer", Description: "Current page number"},
				"page_size":   {Type: "integer", Description: "Results per page"},
				"total_pages": {Type: "integer", Description: "Total number of pages"},
			},
		},
	}
}
