package macvendor

// Config holds configuration for MAC vendor lookups.
type Config struct {
	// APIURL is the vendor lookup endpoint; the MAC is appended to it.
	APIURL string `mapstructure:"api_url" default:"https://api.macvendors.com/"`
	// RatePerSecond caps outgoing lookups; the free tier of the API
	// allows one request per second.
	RatePerSecond float64 `mapstructure:"rate_per_second" default:"1"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
