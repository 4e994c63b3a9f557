// Package server exposes form validation over HTTP.
//
// A Store keeps the loaded definitions; every request builds a fresh form
// from its definition, binds the request body with pkg/binder and validates
// it in the language negotiated from ?lang= or Accept-Language.
//
//	POST /forms/signup/validate
//	Content-Type: application/json
//
//	{"email": "ann@example.com", "password": "short"}
//
// answers 422 with
//
//	{"valid": false, "errors": {"password": "Password must be at least 8 characters long."}, "values": {...}}
//
// and 200 with "valid": true when every field passes. Request errors (bad
// body, unknown form) use ErrorResponse.
package server
