package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/homevault/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/homevault/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/homevault/internal/version.Date={{.Date}}
)

// Info returns the one-line version banner.
func Info() string {
	return "homevault version " + Version + " (commit " + Commit + ", built " + Date + ")"
}
