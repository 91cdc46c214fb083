// Package api is the HTTP client for the Socrates REST API.
//
// # Overview
//
// Client exposes verb operations (Get, Post, Put, Delete) relative to the
// configured API base and typed wrappers for every resource the terminal
// client uses. Every request:
//
//  1. carries the stored access token as a bearer credential when one is
//     present, and no Authorization header otherwise;
//  2. carries a fresh X-Request-ID that is also logged.
//
// Responses are normalized here so callers see exactly one shape: a bare
// value, a {"data": ...} envelope and the backend list envelope
// ({"projects": [...], "total": n}) all decode to the same Go value, and
// anything else fails with ErrUnrecognizedShape. The login payload exists in a
// flat and a nested variant; LoginResult is the decoded union.
//
// # Error Handling
//
// A 401 clears the stored token and runs the hook registered with
// OnUnauthorized before the error is returned. Transport failures wrap
// ErrUnavailable. Other non-2xx responses are *APIError values carrying the
// server's detail message; a 404 also matches ErrNotFound.
//
// There is no retry and no request timeout beyond the caller's context.
package api
