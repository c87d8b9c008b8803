// Package cmd defines the msosgen command tree wired up through kong.
package cmd

// CLI is the root command structure parsed by kong. Field values may come
// from flags, environment variables or a msosgen config file (JSON, YAML or
// TOML), in that priority order.
type CLI struct {
	// ConfigFile is scanned from raw args before kong parses, so a user
	// config can participate in the kong.Configuration chain.
	ConfigFile string `name:"config" help:"Path to a msosgen config file" env:"MSOSGEN_CONFIG"`

	Log struct {
		Level string `help:"Log level: debug, info, warn, error" default:"info" env:"MSOSGEN_LOG_LEVEL"`
		File  string `help:"Write logs to this file instead of stdout/stderr" env:"MSOSGEN_LOG_FILE"`
	} `embed:"" prefix:"log."`

	Gen    Gen           `cmd:"" help:"Generate MS OS 2.0 descriptor blobs from a manifest"`
	Config ConfigCommand `cmd:"" help:"Manifest template helpers"`
}
