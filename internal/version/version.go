package version

import "fmt"

// These variables are populated at build time via -ldflags, e.g.
// -X statboard/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func String() string {
	base := Version
	if Commit != "" {
		base += fmt.Sprintf(" (%s)", Commit)
	}
	if Date != "" {
		base += fmt.Sprintf(" %s", Date)
	}
	return base
}

// UserAgent is sent with payload requests.
func UserAgent() string { return "statboard/" + Version }
