package accounts

import "github.com/JaimeStill/facility-management/pkg/openapi"

// spec holds OpenAPI operation definitions for the accounts domain.
type spec struct {
	Register *openapi.Operation
	Login    *openapi.Operation
	Refresh  *openapi.Operation
	Logout   *openapi.Operation
	Me       *openapi.Operation
	UpdateMe *openapi.Operation
	Password *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all authentication endpoints.
var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register account",
		Description: "Creates an active, non-staff account",
		RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Account created", "User"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Exchanges credentials for an access and refresh token pair",
		RequestBody: openapi.RequestBodyJSON("LoginCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Token pair", "TokenPair"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Refresh: &openapi.Operation{
		Summary:     "Refresh access token",
		Description: "Issues a new access token from an unrevoked refresh token",
		RequestBody: openapi.RequestBodyJSON("RefreshCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("New access token", "AccessResponse"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Logout: &openapi.Operation{
		Summary:     "Log out",
		Description: "Revokes the caller's refresh token until it expires",
		RequestBody: openapi.RequestBodyJSON("RefreshCommand", true),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			204: {Description: "Refresh token revoked"},
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		},
	},
	Me: &openapi.Operation{
		Summary:  "Current user",
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Authenticated user", "User"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	UpdateMe: &openapi.Operation{
		Summary:     "Update current user",
		Description: "Changes the caller's email and names",
		RequestBody: openapi.RequestBodyJSON("UpdateUserCommand", true),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated user", "User"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Password: &openapi.Operation{
		Summary:     "Change password",
		RequestBody: openapi.RequestBodyJSON("PasswordCommand", true),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			204: {Description: "Password changed"},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

// Schemas returns the accounts domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":           {Type: "string", Format: "uuid"},
				"username":     {Type: "string"},
				"email":        {Type: "string", Format: "email"},
				"first_name":   {Type: "string"},
				"last_name":    {Type: "string"},
				"is_active":    {Type: "boolean"},
				"is_staff":     {Type: "boolean"},
				"is_superuser": {Type: "boolean"},
				"date_joined":  {Type: "string", Format: "date-time"},
				"last_login":   {Type: "string", Format: "date-time"},
			},
		},
		"RegisterCommand": {
			Type:     "object",
			Required: []string{"username", "email", "password"},
			Properties: map[string]*openapi.Property{
				"username":   {Type: "string", Description: "3-150 letters, digits, or @.+-_", Example: "jdoe"},
				"email":      {Type: "string", Format: "email"},
				"password":   {Type: "string", Format: "password"},
				"first_name": {Type: "string"},
				"last_name":  {Type: "string"},
			},
		},
		"LoginCommand": {
			Type:     "object",
			Required: []string{"username", "password"},
			Properties: map[string]*openapi.Property{
				"username": {Type: "string"},
				"password": {Type: "string", Format: "password"},
			},
		},
		"RefreshCommand": {
			Type:     "object",
			Required: []string{"refresh"},
			Properties: map[string]*openapi.Property{
				"refresh": {Type: "string", Description: "Refresh token"},
			},
		},
		"UpdateUserCommand": {
			Type:     "object",
			Required: []string{"email"},
			Properties: map[string]*openapi.Property{
				"email":      {Type: "string", Format: "email"},
				"first_name": {Type: "string"},
				"last_name":  {Type: "string"},
			},
		},
		"PasswordCommand": {
			Type:     "object",
			Required: []string{"old_password", "new_password"},
			Properties: map[string]*openapi.Property{
				"old_password": {Type: "string", Format: "password"},
				"new_password": {Type: "string", Format: "password"},
			},
		},
		"TokenPair": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"access":  {Type: "string"},
				"refresh": {Type: "string"},
				"user":    {Ref: "#/components/schemas/User"},
			},
		},
		"AccessResponse": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"access": {Type: "string"},
			},
		},
	}
}
