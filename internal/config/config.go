// Package config resolves client and dev-server settings from an optional
// config.yaml in the onepay home directory, overridden by ONEPAY_* environment
// variables.
package config

type Config interface {
	ClientConfig
	ServerConfig
}

// ClientConfig is what the CLI and SDK wiring need.
type ClientConfig interface {
	GetAPIBase() string
	GetHomeDir() string
	GetDefaultGateway() string
	GetLogLevel() string
	GetAppName() string
}

// ServerConfig is what the local dev server needs.
type ServerConfig interface {
	GetPort() string
	GetTokenSecret() string
	GetEnv() string
}
