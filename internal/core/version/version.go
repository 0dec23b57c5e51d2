// Package version provides information about the build version of the service.
package version

import "fmt"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. Values are set at build time using -ldflags:
//
//	-X 'facilities/internal/core/version.version=v0.3.0'
//	-X 'facilities/internal/core/version.commit=abcd'
//	-X 'facilities/internal/core/version.date=2026-10-01'
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// For returns the build info labelled with a binary name
func For(binary string) BuildInfo {
	b := Info()
	if binary != "" {
		b.Service = binary
	}
	return b
}

// String renders a one line banner, e.g. for --version
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", b.Service, b.Version, b.Commit, b.Date)
}

var (
	service = "facilities-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
