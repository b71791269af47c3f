package main

import (
	"fmt"
	"time"

	"github.com/horgh/config"
)

// Config holds a server's configuration. Every field has a built-in
// default (see defaultConfig) so the server is runnable with zero
// command-line arguments.
type Config struct {
	ListenAddress string
	ServerName    string
	ServerInfo    string
	Version       string
	CreatedDate   string
	MotdFile      string

	MaxNickLength int

	// WakeupTime is carried in the configuration with a default value, but
	// nothing in the server reads it and loadConfig does not set it from the
	// file; this server does no time-based housekeeping or disconnection.
	WakeupTime time.Duration

	// Opers maps oper name to password. Defaults to a single "operator"/
	// "foobar" entry, overridable via -conf so a deployer isn't stuck with
	// a hardcoded shared secret in production.
	Opers map[string]string
}

func defaultConfig() Config {
	return Config{
		ListenAddress: ":6667",
		ServerName:    "jusot.com",
		ServerInfo:    "jusot.com IRC server",
		Version:       "1.0",
		CreatedDate:   "2026",
		MotdFile:      "motd.txt",
		MaxNickLength: 9,
		WakeupTime:    10 * time.Second,
		Opers:         map[string]string{"operator": "foobar"},
	}
}

// loadConfig reads a key=value configuration file in the same format as
// github.com/horgh/config's ReadStringMap, overlaying any keys present onto
// the built-in defaults. Every key is optional, and a blank path simply
// leaves the defaults in place; a path that cannot be read is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	raw, err := config.ReadStringMap(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config %s: %s", path, err)
	}

	if v, ok := raw["listen-address"]; ok && v != "" {
		cfg.ListenAddress = v
	}
	if v, ok := raw["server-name"]; ok && v != "" {
		cfg.ServerName = v
	}
	if v, ok := raw["server-info"]; ok && v != "" {
		cfg.ServerInfo = v
	}
	if v, ok := raw["version"]; ok && v != "" {
		cfg.Version = v
	}
	if v, ok := raw["created-date"]; ok && v != "" {
		cfg.CreatedDate = v
	}
	if v, ok := raw["motd-file"]; ok && v != "" {
		cfg.MotdFile = v
	}

	if v, ok := raw["oper-name"]; ok && v != "" {
		operPass := raw["oper-password"]
		cfg.Opers = map[string]string{v: operPass}
	}

	return cfg, nil
}
