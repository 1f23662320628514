// Package netbox provides a minimal client for the NetBox REST API.
//
// The client covers the two operations the sync engine needs: filtered list
// queries against a kind's endpoint and object creation. Responses follow the
// NetBox envelope format ({count, results: [{id, ...}]}) and authentication
// uses a static token header attached to every request.
//
// # Failure Semantics
//
// Neither a transport failure nor a non-2xx response is fatal. Transport
// errors are wrapped and returned; rejections are returned as *APIError
// carrying the HTTP status and response body, with a diagnostic logged. The
// reconciliation engine converts both into per-resource failure results and
// keeps going.
package netbox
