// Package build contains build-related variables set at compile time.
package build

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version = "N/A"
	Time    = "N/A"
	GitSHA  = "N/A"
)

const tmplt = `
bpatch %s -- in-place binary patcher
  GOARCH:     %s
  GOOS:       %s
  Build Time: %s
  Git SHA:    %s
`

// Summary returns a one-screen description of the running build, suitable
// for a version banner.
func Summary() string {
	return fmt.Sprintf(strings.TrimSpace(tmplt),
		Version,
		runtime.GOARCH,
		runtime.GOOS,
		Time,
		GitSHA,
	)
}
