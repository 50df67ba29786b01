// Package rest provides a signed HTTP client for the exchange REST API.
//
// Every response arrives in a {success, result, error} envelope; the
// client unwraps it and surfaces failures as *APIError. GET requests
// retry on 5xx and 429 with jittered exponential backoff; mutating
// requests are sent exactly once.
//
// Endpoint: https://ftx.com/api
package rest
