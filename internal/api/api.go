// Package api builds the four handler groups (auth, facilities,
// permissions, admin) as prefix-mounted modules, along with the OpenAPI
// document describing the three API groups.
package api

import (
	"github.com/JaimeStill/facility-management/internal/config"
	"github.com/JaimeStill/facility-management/internal/infrastructure"
	"github.com/JaimeStill/facility-management/pkg/auth"
	"github.com/JaimeStill/facility-management/pkg/middleware"
	"github.com/JaimeStill/facility-management/pkg/module"
	"github.com/JaimeStill/facility-management/pkg/openapi"
)

// Mount prefixes for the handler groups.
const (
	AdminPrefix       = "/admin"
	AuthPrefix        = "/api/auth"
	FacilitiesPrefix  = "/api/facilities"
	PermissionsPrefix = "/api/permissions"
)

// SpecPath is where the OpenAPI document is served.
const SpecPath = "/api/openapi.json"

// Modules holds the handler groups and the rendered OpenAPI document.
type Modules struct {
	Admin       *module.Module
	Auth        *module.Module
	Facilities  *module.Module
	Permissions *module.Module
	Spec        []byte
}

// NewModules builds every handler group from infra. prefixes is read by the
// admin group at request time to report the routing table.
func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure, prefixes func() []string) (*Modules, error) {
	domain := NewDomain(cfg, NewRuntime(cfg, infra, "domain"))

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Domain)

	session := auth.NewSession(cfg.Auth.CookieName, AdminPrefix)

	authRT := NewRuntime(cfg, infra, "auth")
	authModule := module.New(AuthPrefix, accountsMux(authRT, domain, spec, session))
	useAPI(authModule, cfg, authRT)

	facilitiesRT := NewRuntime(cfg, infra, "facilities")
	facilitiesModule := module.New(FacilitiesPrefix, facilitiesMux(facilitiesRT, domain, spec))
	useAPI(facilitiesModule, cfg, facilitiesRT)
	facilitiesModule.Use(infra.Authenticator.Middleware)

	permissionsRT := NewRuntime(cfg, infra, "permissions")
	permissionsModule := module.New(PermissionsPrefix, permissionsMux(permissionsRT, domain, spec))
	useAPI(permissionsModule, cfg, permissionsRT)
	permissionsModule.Use(infra.Authenticator.Middleware)

	adminRT := NewRuntime(cfg, infra, "admin")
	mux, err := adminMux(cfg, adminRT, domain, prefixes)
	if err != nil {
		return nil, err
	}
	adminModule := module.New(AdminPrefix, mux)
	adminModule.Use(middleware.Logger(adminRT.Logger))
	adminModule.Use(middleware.MaxBytes(cfg.Server.MaxBodyBytes()))
	adminModule.Use(infra.Metrics.Instrument(AdminPrefix))
	adminModule.Use(auth.NewAuthenticator(infra.Tokens, session.Name(), adminRT.Logger).Middleware)
	adminModule.Use(auth.RequireStaff(adminRT.Logger))

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	return &Modules{
		Admin:       adminModule,
		Auth:        authModule,
		Facilities:  facilitiesModule,
		Permissions: permissionsModule,
		Spec:        specBytes,
	}, nil
}

// Mount registers every handler group and the OpenAPI document on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.Admin)
	router.Mount(m.Auth)
	router.Mount(m.Facilities)
	router.Mount(m.Permissions)
	router.HandleNative("GET "+SpecPath, openapi.ServeSpec(m.Spec))
}

// useAPI applies the middleware shared by the JSON API groups. The first
// registered runs outermost.
func useAPI(m *module.Module, cfg *config.Config, rt *Runtime) {
	m.Use(middleware.Logger(rt.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBytes(cfg.Server.MaxBodyBytes()))
	m.Use(rt.Metrics.Instrument(m.Prefix()))
}
