// Package api implements the HTTP handlers for the REST API: authentication
// (login, register, me) and the task CRUD endpoints consumed by the dashboard
// clients. Handlers validate input, translate domain/store errors into
// sanitized HTTP responses, and never leak internal error details.
package api
