package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/openapi"
	"github.com/JaimeStill/facility-management/pkg/routes"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body + r.PathValue("id")))
	}
}

func group() routes.Group {
	return routes.Group{
		Tags: []string{"Facilities"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: write("list"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "POST", Pattern: "", Handler: write("create"), OpenAPI: &openapi.Operation{Summary: "Create"}},
			{Method: "GET", Pattern: "/{id}", Handler: write("find:"), OpenAPI: &openapi.Operation{Summary: "Find", Tags: []string{"Custom"}}},
			{Method: "GET", Pattern: "/internal", Handler: write("internal")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/grants",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: write("grants:"), OpenAPI: &openapi.Operation{Summary: "Grants"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{"Facility": {Type: "object"}},
	}
}

func TestRegister_Dispatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api/facilities", nil, group())

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"GET", "/", 200, "list"},
		{"POST", "/", 200, "create"},
		{"GET", "/abc", 200, "find:abc"},
		{"GET", "/abc/grants", 200, "grants:abc"},
		{"DELETE", "/", 405, ""},
		{"GET", "/abc/def/ghi", 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(w.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}
}

func TestRegister_Spec(t *testing.T) {
	spec := openapi.NewSpec("t", "v")
	routes.Register(http.NewServeMux(), "/api/facilities", spec, group())

	root := spec.Paths["/api/facilities"]
	if root == nil || root.Get == nil || root.Post == nil {
		t.Fatalf("root path item = %+v", root)
	}
	if root.Get.Tags[0] != "Facilities" {
		t.Errorf("Tags = %v, want inherited [Facilities]", root.Get.Tags)
	}
	if spec.Paths["/api/facilities/{id}"].Get.Tags[0] != "Custom" {
		t.Error("explicit tags should not be overwritten")
	}
	if spec.Paths["/api/facilities/{id}/grants"] == nil {
		t.Error("child group path missing")
	}
	if _, ok := spec.Paths["/api/facilities/internal"]; ok {
		t.Error("undocumented route should not be in spec")
	}
	if spec.Components.Schemas["Facility"] == nil {
		t.Error("group schemas not added to components")
	}
}
