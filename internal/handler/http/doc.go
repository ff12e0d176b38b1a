// Package http implements the REST API of the contract server.
//
// It exposes route wiring, request handlers and the middleware chain used by
// the API. Tracing, access logging, compression and bearer authentication are
// handled in this package before requests are delegated to the service
// layer.
package http
