package openapi

// NewComponents creates components pre-populated with the shared error
// responses, pagination request schema, and bearer security scheme.
func NewComponents() *Components {
	errorBody := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Property{
					"page":      {Type: "integer", Description: "Page number (1-indexed)"},
					"page_size": {Type: "integer", Description: "Results per page"},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "array", Items: &Schema{Ref: "#/components/schemas/SortField"}},
				},
			},
			"SortField": {
				Type: "object",
				Properties: map[string]*Property{
					"field":      {Type: "string"},
					"descending": {Type: "boolean"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   {Description: "Invalid request", Content: errorBody},
			"Unauthorized": {Description: "Missing or invalid credentials", Content: errorBody},
			"Forbidden":    {Description: "Insufficient permission", Content: errorBody},
			"NotFound":     {Description: "Resource not found", Content: errorBody},
			"Conflict":     {Description: "Resource already exists", Content: errorBody},
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
	}
}

// AddSchemas merges schemas into the component set.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the component set.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, response := range responses {
		c.Responses[name] = response
	}
}
