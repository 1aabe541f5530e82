// pkg/version/version.go
// Package version provides version metadata for the application.
package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"
)

// These variables are typically injected at build time using -ldflags
var (
	// Version holds the current version of mobileserver.
	Version = "dev"
	// Commit holds the current version commit of mobileserver.
	Commit = "none"
	// BuildDate holds the build date of mobileserver.
	BuildDate = "unknown"
	// StartDate holds the start date of the process.
	StartDate = time.Now()
)

// Struct returns version information in a structured format.
type Struct struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("mobileserver %s (commit: %s, date: %s)", Normalized(), Commit, BuildDate)
}

// Get returns version information as a Struct.
func Get() Struct {
	return Struct{
		Version:   Normalized(),
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Semver parses Version. Development builds ("dev") report ok=false.
func Semver() (*semver.Version, bool) {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Normalized returns Version in canonical "vMAJOR.MINOR.PATCH" form when it
// parses as semver, and the raw value otherwise.
func Normalized() string {
	v, ok := Semver()
	if !ok {
		return Version
	}
	return "v" + v.String()
}
