// Package client talks to the authd JSON API.
//
// HTTPClient keeps the session cookie in a cookie jar, so a successful
// Signup or Login authenticates later CheckAuth calls until Logout.
//
// Transport failures are reported as ErrUnavailable. Failures the server
// reports in its response envelope come back as *APIError; 401 responses
// also match ErrUnauthorized with errors.Is.
package client
