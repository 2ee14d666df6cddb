// Package validation provides struct tag validation on top of
// go-playground/validator and a small programmatic collector.
//
// Both report failures as an errors.AppError with code INVALID_INPUT and a
// "fields" detail listing every failing field.
//
// # Struct Tag Validation
//
//	type ServiceConfig struct {
//	    Name string `mapstructure:"name" validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name)
//	err := v.Validate()
package validation
