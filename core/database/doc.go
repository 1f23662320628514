// Package database manages the connection to the local cache database.
//
// The database backs the MAC vendor cache: the upstream vendor API is
// rate-limited to one request per second, so answers are remembered across
// runs. Sqlite is the default driver and needs no external service; mysql is
// supported for shared deployments.
package database
