// Package httpapi serves the proxy, auth, demo and status routes as JSON
// over HTTP.
//
// Every /api/google route checks for credentials before looking at the
// request, answers 503 when none were resolved, and then delegates
// validation and the upstream call to the driving services. Errors are
// mapped to status codes by domain.HTTPStatus.
package httpapi
