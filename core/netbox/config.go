package netbox

// Config holds configuration for the NetBox API client.
type Config struct {
	// URL is the base URL of the NetBox instance.
	URL string `mapstructure:"url" default:"http://localhost:8000"`
	// Token is the static API token used for authentication.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
