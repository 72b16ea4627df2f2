package facilities

import "github.com/JaimeStill/facility-management/pkg/openapi"

// spec holds OpenAPI operation definitions for the facilities domain.
type spec struct {
	List   *openapi.Operation
	Create *openapi.Operation
	Search *openapi.Operation
	Types  *openapi.Operation
	Find   *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var typeEnum = []string{string(Office), string(Warehouse), string(Laboratory), string(Clinic), string(Other)}

var filterParams = []*openapi.Parameter{
	openapi.QueryParam("type", "string", "Filter by facility type", false),
	openapi.QueryParam("city", "string", "Filter by city (contains)", false),
	openapi.QueryParam("active", "boolean", "Filter by active flag", false),
}

// Spec contains OpenAPI operation definitions for all facility endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List facilities",
		Description: "Returns a paginated list. Non-staff callers only see facilities they hold a grant on",
		Security:    openapi.Bearer(),
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches name, code, city)", false),
			openapi.QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
		}, filterParams...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of facilities", "FacilityPageResult"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create facility",
		Description: "Staff only. The creator receives admin permission on the new facility",
		Security:    openapi.Bearer(),
		RequestBody: openapi.RequestBodyJSON("CreateFacilityCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Facility created", "Facility"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search facilities",
		Description: "Search facilities with filters and pagination via POST body",
		Security:    openapi.Bearer(),
		Parameters:  filterParams,
		RequestBody: openapi.RequestBodyJSON("PageRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of facilities", "FacilityPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Types: &openapi.Operation{
		Summary:  "List facility types",
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Known facility types",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string", Enum: typeEnum}}},
				},
			},
		},
	},
	Find: &openapi.Operation{
		Summary:     "Get facility by ID",
		Description: "Requires view permission",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Facility UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Facility", "Facility"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update facility",
		Description: "Requires manage permission",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Facility UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateFacilityCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Facility updated", "Facility"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete facility",
		Description: "Requires admin permission. Grants on the facility are removed with it",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Facility UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Facility deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the facility domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	command := map[string]*openapi.Property{
		"name":        {Type: "string", Example: "North Campus Lab"},
		"code":        {Type: "string", Description: "Uppercase letters, digits, and dashes", Example: "NCL-01"},
		"type":        {Type: "string", Enum: typeEnum},
		"address":     {Type: "string"},
		"city":        {Type: "string"},
		"capacity":    {Type: "integer"},
		"description": {Type: "string"},
	}

	update := map[string]*openapi.Property{
		"is_active": {Type: "boolean", Description: "Omit to keep the current value"},
	}
	for k, v := range command {
		update[k] = v
	}

	return map[string]*openapi.Schema{
		"Facility": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"code":        {Type: "string"},
				"type":        {Type: "string", Enum: typeEnum},
				"address":     {Type: "string"},
				"city":        {Type: "string"},
				"capacity":    {Type: "integer"},
				"description": {Type: "string"},
				"is_active":   {Type: "boolean"},
				"created_by":  {Type: "string", Format: "uuid"},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"CreateFacilityCommand": {
			Type:       "object",
			Required:   []string{"name", "code", "type"},
			Properties: command,
		},
		"UpdateFacilityCommand": {
			Type:       "object",
			Required:   []string{"name", "code", "type"},
			Properties: update,
		},
		"FacilityPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("Facility")},
				"total":       {Type: "integer", Description: "Total number of results"},
				"page":        {Type: "integer", Description: "Current page number"},
				"page_size":   {Type: "integer", Description: "Results per page"},
				"total_pages": {Type: "integer", Description: "Total number of pages"},
			},
		},
	}
}
