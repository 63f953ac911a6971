package version

// Set at build time with -ldflags "-X github.com/telegram-files/gate/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  string
	Date    string
	License = "Apache License 2.0"
)
