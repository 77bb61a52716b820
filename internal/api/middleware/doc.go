// Package middleware provides HTTP middleware for API key authentication and
// request tracing.
package middleware
