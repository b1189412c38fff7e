// Package model holds the stored entities and the request payloads that
// create or address them.
//
// Entities reference each other only through explicit id fields; there
// are no back-references between a user and its favorites.
package model
