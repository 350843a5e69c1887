package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	keyAPIBase     = "api_base"
	keyHome        = "home"
	keyGateway     = "gateway"
	keyLogLevel    = "log_level"
	keyAppName     = "app_name"
	keyPort        = "port"
	keyTokenSecret = "token_secret"
	keyEnv         = "env"
)

type viperConfig struct {
	v *viper.Viper
}

var _ Config = viperConfig{}

// New loads configuration. Precedence: ONEPAY_* environment variables, then
// <home>/config.yaml, then built-in defaults. A missing config file is fine.
func New() Config {
	v := viper.New()
	v.SetEnvPrefix("ONEPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyAPIBase, "http://localhost:8000/api/v1")
	v.SetDefault(keyHome, defaultHome())
	v.SetDefault(keyGateway, "mock")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyAppName, "onepay")
	v.SetDefault(keyPort, "8000")
	v.SetDefault(keyTokenSecret, "dev-only-secret")
	v.SetDefault(keyEnv, "DEV")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString(keyHome))
	_ = v.ReadInConfig() // optional file

	return viperConfig{v: v}
}

func defaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".onepay"
	}
	return filepath.Join(dir, ".onepay")
}

func (c viperConfig) GetAPIBase() string {
	return strings.TrimRight(c.v.GetString(keyAPIBase), "/")
}

func (c viperConfig) GetHomeDir() string {
	return c.v.GetString(keyHome)
}

func (c viperConfig) GetDefaultGateway() string {
	return c.v.GetString(keyGateway)
}

func (c viperConfig) GetLogLevel() string {
	return c.v.GetString(keyLogLevel)
}

func (c viperConfig) GetAppName() string {
	return c.v.GetString(keyAppName)
}

func (c viperConfig) GetPort() string {
	port := c.v.GetString(keyPort)
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (c viperConfig) GetTokenSecret() string {
	return c.v.GetString(keyTokenSecret)
}

func (c viperConfig) GetEnv() string {
	return c.v.GetString(keyEnv)
}
