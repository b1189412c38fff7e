// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP boundary is turned into an
// *HTTPError so clients always receive the same JSON body:
//
//	{"error":"Person not found!","code":"NOT_FOUND","status":404,"errors":[]}
package errs
