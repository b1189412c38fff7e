// Package service contains the business rules.
//
// It sits between the handler and repository layers: it receives
// validated payloads, enforces uniqueness and favorite rules, and maps
// storage failures to *errs.HTTPError values the handlers can return
// unchanged.
package service
