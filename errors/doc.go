// Package errors provides the structured error type returned by the
// dependency resolver and the packages around it.
//
// Every failure carries a machine-readable code, a message naming the
// offending type or field, optional details and the underlying cause.
// Sentinels allow matching by code with the standard errors.Is:
//
//	if errors.Is(err, injerrors.ErrConfiguration) {
//	    // missing binding, missing marker or invalid registry
//	}
package errors
