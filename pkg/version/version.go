package version

// Set with -ldflags "-X github.com/buckcalc/buckcalc/pkg/version.Version=... -X ...GitCommit=..."
var (
	Version   = "v0.0.0-dev"
	GitCommit = "unknown"
)
