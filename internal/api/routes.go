package api

import (
	"net/http"

	"github.com/JaimeStill/facility-management/internal/accounts"
	"github.com/JaimeStill/facility-management/internal/admin"
	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/facilities"
	"github.com/JaimeStill/facility-management/internal/permissions"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/openapi"
	"github.com/JaimeStill/facility-management/pkg/routes"
)

func accountsMux(rt *Runtime, domain *Domain, spec *openapi.Spec, session *auth.Session) *http.ServeMux {
	h := accounts.NewHandler(domain.Accounts, rt.Tokens, rt.Authenticator, session, rt.Logger)

	mux := http.NewServeMux()
	routes.Register(mux, AuthPrefix, spec, h.Routes())
	return mux
}

func facilitiesMux(rt *Runtime, domain *Domain, spec *openapi.Spec) *http.ServeMux {
	h := facilities.NewHandler(domain.Facilities, domain.Permissions, rt.Logger, rt.Pagination)

	mux := http.NewServeMux()
	routes.Register(mux, FacilitiesPrefix, spec, h.Routes())
	return mux
}

func permissionsMux(rt *Runtime, domain *Domain, spec *openapi.Spec) *http.ServeMux {
	h := permissions.NewHandler(domain.Permissions, rt.Logger, rt.Pagination)

	mux := http.NewServeMux()
	routes.Register(mux, PermissionsPrefix, spec, h.Routes())
	return mux
}

func adminMux(cfg *config.Config, rt *Runtime, domain *Domain, prefixes func() []string) (*http.ServeMux, error) {
	h, err := admin.NewHandler(admin.Deps{
		Accounts:    domain.Accounts,
		Facilities:  domain.Facilities,
		Permissions: domain.Permissions,
		Settings:    cfg.Redacted(),
		Prefixes:    prefixes,
		Logger:      rt.Logger,
		Pagination:  rt.Pagination,
		BasePath:    AdminPrefix,
		Title:       cfg.Admin.Title,
		Version:     cfg.Version,
	})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	routes.Register(mux, AdminPrefix, nil, h.Routes())
	return mux, nil
}
