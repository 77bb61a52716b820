// Package api handles incoming HTTP requests, request validation and
// response formatting. Handlers translate HTTP concerns to service calls
// and report every failure through HandleAPIError.
package api
