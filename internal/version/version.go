// Package version holds build information set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/information-sharing-networks/posts-demo/internal/version.version=v1.0.0"
package version

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type Info struct {
	Version   string
	BuildDate string
	GitCommit string
}

func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}
