// Package configsync pulls running configuration from managed network
// devices over the RouterOS API and archives it as versioned snapshots.
// Each device yields a JSON snapshot plus a human-readable summary, and
// changed snapshots can be committed to git and uploaded to object storage.
package configsync
