package configsync

// Config holds configuration for device configuration sync.
type Config struct {
	// Output is the directory configuration snapshots are written to.
	Output string `mapstructure:"output" default:"configs"`
	// DevicesFile is the JSON file listing the managed devices.
	DevicesFile string `mapstructure:"devices_file" default:"devices.json"`
	// Commit enables committing snapshot changes to git.
	Commit bool `mapstructure:"commit" default:"true"`
	// TimeoutSeconds is the device connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
