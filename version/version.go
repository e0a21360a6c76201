// Package version reports build information. The Git* values are set at
// link time:
//
//	go build -ldflags "-X github.com/autopdf/autopdf/version.GitRelease=v0.3.0 \
//	  -X github.com/autopdf/autopdf/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/autopdf/autopdf/version.GitCommitDate=$(git log -1 --format=%cs)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	GitRelease    = "dev"
	GitCommit     = ""
	GitCommitDate = ""
	GoInfo        = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

func init() {
	if GitCommit != "" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 7 {
				GitCommit = s.Value[:7]
			} else {
				GitCommit = s.Value
			}
		case "vcs.time":
			GitCommitDate = s.Value
		}
	}
}
