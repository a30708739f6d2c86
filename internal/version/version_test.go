package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origBuild, origCommit := Version, BuildTime, GitCommit
	defer func() { Version, BuildTime, GitCommit = origVersion, origBuild, origCommit }()

	Version, BuildTime, GitCommit = "v1.2.0", "unknown", "unknown"
	assert.Equal(t, "v1.2.0", GetVersionString())

	BuildTime, GitCommit = "2025-01-01T00:00:00Z", "0123456789abcdef"
	assert.Equal(t, "v1.2.0 (built 2025-01-01T00:00:00Z, commit 0123456)", GetVersionString())
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
