// Package logger provides structured logging backed by zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields. The resolver logs every
// constructed component at debug level through a "di" component logger.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("products")
//	log.Info("loaded", logger.Fields("count", 3))
package logger
