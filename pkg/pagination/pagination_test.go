package pagination_test

import (
	"math"
	"net/url"
	"os"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"over max", 2, 500, 2, 100},
		{"valid", 4, 25, 4, 25},
		{"page past addressable rows", math.MaxInt, 100, pagination.MaxOffset/100 + 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.size}
			req.Normalize(cfg)

			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("Normalize() = (%d, %d), want (%d, %d)", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 15}
	if req.Offset() != 30 {
		t.Errorf("Offset() = %d, want 30", req.Offset())
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"2"},
		"page_size": {"5"},
		"search":    {"depot"},
		"sort":      {"-name,city"},
	}

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 2 || req.PageSize != 5 {
		t.Errorf("page = (%d, %d), want (2, 5)", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "depot" {
		t.Errorf("Search = %v, want depot", req.Search)
	}
	if len(req.Sort) != 2 || !req.Sort[0].Descending || req.Sort[1].Field != "city" {
		t.Errorf("Sort = %+v", req.Sort)
	}
}

func TestPageRequestFromQuery_HugePage(t *testing.T) {
	values := url.Values{"page": {"9223372036854775807"}, "page_size": {"50"}}

	req := pagination.PageRequestFromQuery(values, cfg)
	if off := req.Offset(); off < 0 || off > pagination.MaxOffset {
		t.Errorf("Offset() = %d, want within [0, %d]", off, pagination.MaxOffset)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 10, 1},
		{"exact", 20, 10, 2},
		{"remainder", 21, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if result.Data == nil {
				t.Error("Data should be an empty slice, not nil")
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_PAGE_MAX", "50")
	defer os.Unsetenv("TEST_PAGE_MAX")

	c := pagination.Config{}
	if err := c.Finalize(&pagination.ConfigEnv{MaxPageSize: "TEST_PAGE_MAX"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if c.DefaultPageSize != 20 || c.MaxPageSize != 50 {
		t.Errorf("Finalize() = %+v, want {20 50}", c)
	}

	bad := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() should reject default above max")
	}
}
