// Package client talks to the gophauth HTTP API.
//
// HTTPClient keeps the access token returned by Signup/Signin and sends it
// as a bearer token on Me. Transport failures are reported as
// ErrUnavailable; API errors come back as *APIError carrying the HTTP status
// and the server's message.
package client
