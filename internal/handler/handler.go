// Package handler is the HTTP layer.
//
// Handlers bind and validate the request through the validation
// package, call the service layer and shape the JSON response. Errors
// are returned unchanged so the global error handler writes them.
package handler
