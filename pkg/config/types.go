// pkg/config/types.go
package config

import "time"

// Config is the root configuration structure for mobileserver.
type Config struct {
	Log    LogConfig    `description:"Logging configuration" json:"log" koanf:"log" yaml:"log"`
	Server ServerConfig `description:"Server configuration" json:"server" koanf:"server" yaml:"server"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level" json:"level" koanf:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `description:"Log format: json | text" json:"format" koanf:"format" yaml:"format" validate:"omitempty,oneof=json text"`
	File   string `description:"Log file path" json:"file" koanf:"file" yaml:"file"`
}

// ServerConfig holds configuration for the demo file server.
type ServerConfig struct {
	// Network settings
	Addr string `description:"Listen address (empty for all interfaces)" json:"addr" koanf:"addr" yaml:"addr" validate:"omitempty,ip|hostname"`
	Port int    `description:"Listen port" json:"port" koanf:"port" yaml:"port" validate:"min=1,max=65535"`

	// RootDir is the directory served over HTTP. Empty means the directory
	// of the running executable.
	RootDir string `description:"Directory to serve" json:"root_dir" koanf:"root_dir" yaml:"root_dir"`

	OpenBrowser bool `description:"Open the default browser on start" json:"open_browser" koanf:"open_browser" yaml:"open_browser"`
	Watch       bool `description:"Log file changes under the served directory" json:"watch" koanf:"watch" yaml:"watch"`

	// ProbeAddr is the remote UDP address used to discover the LAN IP.
	ProbeAddr string `description:"UDP probe address for LAN IP detection" json:"probe_addr" koanf:"probe_addr" yaml:"probe_addr" validate:"required,hostname_port"`

	// HTTP timeouts (zero disables)
	ReadTimeout     time.Duration `description:"HTTP read timeout" json:"read_timeout" koanf:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `description:"HTTP write timeout" json:"write_timeout" koanf:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `description:"Graceful shutdown timeout" json:"shutdown_timeout" koanf:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=0"`
}
