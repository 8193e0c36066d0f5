// Package api contains the HTTP handlers for the review, analytics, and
// streak endpoints. Handlers are thin: they parse and validate requests,
// call a service, and translate results or errors into JSON responses.
package api
