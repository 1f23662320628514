// Package config centralizes application configuration.
//
// Configuration is assembled from per-package partial configs (netbox, log,
// database, storage, vendor, sync), each declaring its own defaults through
// struct tags. Values are resolved from environment variables, with an
// optional .env file loaded first, so NETBOX_TOKEN maps to netbox.token and
// so on.
package config
