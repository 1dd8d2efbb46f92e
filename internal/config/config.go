// Package config loads the server's config.ini file. The format and
// defaults are fixed by the spec: a [settings] section with port
// (default 8080) and secret_key (default "xyz"), now joined by the
// metrics_port this module's ambient stack adds (default 9090).
package config

import "gopkg.in/ini.v1"

const (
	DefaultPort         = 8080
	DefaultSecretKey    = "xyz"
	DefaultMetricsPort  = 9090
)

// Config is the fully resolved server configuration.
type Config struct {
	Port        int
	SecretKey   string
	MetricsPort int
}

// Load reads path as an ini file and extracts [settings]. A missing
// file, section, or key falls back to the documented default for that
// field individually — the file is advisory, never required.
func Load(path string) (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		SecretKey:   DefaultSecretKey,
		MetricsPort: DefaultMetricsPort,
	}

	f, err := ini.LoadSources(ini.LoadOptions{Loose: true, Insensitive: false}, path)
	if err != nil {
		return cfg, err
	}

	section := f.Section("settings")
	cfg.Port = section.Key("port").MustInt(DefaultPort)
	cfg.SecretKey = section.Key("secret_key").MustString(DefaultSecretKey)
	cfg.MetricsPort = section.Key("metrics_port").MustInt(DefaultMetricsPort)

	return cfg, nil
}
