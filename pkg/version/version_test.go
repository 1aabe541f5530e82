// pkg/version/version_test.go
package version

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := Version
	Version = v
	t.Cleanup(func() { Version = prev })
}

func TestInfo_ReturnsFormattedString(t *testing.T) {
	info := Info()

	if !strings.Contains(info, "mobileserver") {
		t.Errorf("Expected info to contain 'mobileserver', got: %s", info)
	}
	if !strings.Contains(info, Commit) {
		t.Errorf("Expected info to contain commit '%s'", Commit)
	}
	if !strings.Contains(info, BuildDate) {
		t.Errorf("Expected info to contain build date '%s'", BuildDate)
	}
}

func TestGet_ReturnsCorrectStruct(t *testing.T) {
	v := Get()

	if v.Commit != Commit {
		t.Errorf("Expected commit %s, got %s", Commit, v.Commit)
	}
	if v.GoVersion != runtime.Version() {
		t.Errorf("Expected go version %s, got %s", runtime.Version(), v.GoVersion)
	}
	if v.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected platform %s", v.Platform)
	}
}

func TestStartDate_IsInitialized(t *testing.T) {
	if time.Since(StartDate) > time.Minute {
		t.Errorf("StartDate is too old: %s", StartDate)
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dev", "dev"},
		{"1.2.3", "v1.2.3"},
		{"v0.4.0", "v0.4.0"},
		{"1.2", "v1.2.0"},
		{"v1.0.0-rc.1", "v1.0.0-rc.1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			withVersion(t, tt.in)
			if got := Normalized(); got != tt.want {
				t.Errorf("Normalized() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSemver_DevIsNotSemver(t *testing.T) {
	withVersion(t, "dev")
	if _, ok := Semver(); ok {
		t.Error("dev build should not parse as semver")
	}
}
