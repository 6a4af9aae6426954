package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	orig := [3]string{Version, GitCommit, BuildDate}
	t.Cleanup(func() { Version, GitCommit, BuildDate = orig[0], orig[1], orig[2] })

	Version = "dev"
	assert.Equal(t, "dev", GetFullVersion())

	Version, GitCommit, BuildDate = "v1.2.0", "0123456789abcdef", "2026-10-01"
	assert.Equal(t, "v1.2.0", GetVersion())
	assert.Equal(t, "v1.2.0 (commit 0123456, built 2026-10-01, "+runtime.Version()+")", GetFullVersion())
}
