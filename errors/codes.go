package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeConfiguration indicates a registry or component misconfiguration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeCircularDependency indicates a component depends on itself
	// through its injection points. It is a configuration error.
	ErrCodeCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"
	// ErrCodeInstantiation indicates a component could not be constructed.
	ErrCodeInstantiation ErrorCode = "INSTANTIATION_ERROR"
	// ErrCodeInjection indicates a resolved dependency could not be assigned.
	ErrCodeInjection ErrorCode = "INJECTION_ERROR"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// configurationCodes lists the codes that match ErrConfiguration.
var configurationCodes = map[ErrorCode]bool{
	ErrCodeConfiguration:      true,
	ErrCodeCircularDependency: true,
}

// IsConfigurationCode returns true if the code describes a configuration error.
func IsConfigurationCode(code ErrorCode) bool {
	return configurationCodes[code]
}
