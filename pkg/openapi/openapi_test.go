package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Facilities", "1.2.0")
	spec.SetDescription("desc")
	spec.AddServer("https://facilities.example.com")
	spec.AddServer("")

	if spec.OpenAPI != "3.1.0" || spec.Info.Version != "1.2.0" || spec.Info.Description != "desc" {
		t.Errorf("spec = %+v", spec.Info)
	}
	if len(spec.Servers) != 1 {
		t.Errorf("len(Servers) = %d, want 1", len(spec.Servers))
	}
}

func TestNewComponents(t *testing.T) {
	c := openapi.NewComponents()

	for _, name := range []string{"Error", "PageRequest"} {
		if _, ok := c.Schemas[name]; !ok {
			t.Errorf("missing schema %s", name)
		}
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "Forbidden", "NotFound", "Conflict"} {
		if _, ok := c.Responses[name]; !ok {
			t.Errorf("missing response %s", name)
		}
	}
	if c.SecuritySchemes["bearerAuth"] == nil {
		t.Error("missing bearerAuth security scheme")
	}

	c.AddSchemas(map[string]*openapi.Schema{"Facility": {Type: "object"}})
	if c.Schemas["Facility"] == nil {
		t.Error("AddSchemas() did not add Facility")
	}
}

func TestAddOperation(t *testing.T) {
	spec := openapi.NewSpec("t", "v")
	spec.AddOperation("/api/facilities", http.MethodGet, &openapi.Operation{Summary: "list"})
	spec.AddOperation("/api/facilities", http.MethodPost, &openapi.Operation{Summary: "create"})

	item := spec.Paths["/api/facilities"]
	if item == nil || item.Get.Summary != "list" || item.Post.Summary != "create" {
		t.Errorf("path item = %+v", item)
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Facilities", "1.0.0")
	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}

	w := httptest.NewRecorder()
	openapi.ServeSpec(data)(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if doc["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", doc["openapi"])
	}
	if w.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
}
