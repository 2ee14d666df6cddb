// Package version reports build information for the products binary and
// the startup summary.
//
// Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/injector/version.Version=1.0.0"
//
// Unset values fall back to the VCS stamps in runtime/debug build info.
package version
