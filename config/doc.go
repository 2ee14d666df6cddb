// Package config loads service configuration.
//
// LoadConfig reads a config.yml found next to the service command (or given
// explicitly), overlays an optional .env file and the process environment,
// and unmarshals the result with Viper. Environment keys map onto nested
// keys by splitting on underscores, so RESOLVER_INCLUDE_EMBEDDED sets
// resolver.include_embedded.
//
// Service configs embed ServiceConfig:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    DataFile string `yaml:"data_file" mapstructure:"data_file"`
//	}
//
// Configuration never carries component bindings; those are code.
package config
