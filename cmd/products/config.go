package main

import (
	"github.com/kbukum/injector/config"
)

// Config is the products CLI configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	// DataFile is the catalog read when --file is not given.
	DataFile string `yaml:"data_file" mapstructure:"data_file"`
}

// ApplyDefaults fills the service name before the base defaults run. Logs
// go to stderr unless configured otherwise; stdout carries the table.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	c.ServiceConfig.ApplyDefaults()
}
