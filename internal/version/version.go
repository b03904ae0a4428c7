package version

// Set via -ldflags "-X github.com/neox5/jetdqm/internal/version.version=..."
var (
	version = "dev"
	commit  = ""
)

// String returns the build version with the short commit hash when known.
func String() string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		return version + " (" + commit[:7] + ")"
	}
	return version + " (" + commit + ")"
}
