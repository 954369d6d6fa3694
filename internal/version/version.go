package version

import "github.com/fatih/color"

// Version information for the octls CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Major, Minor and Patch form the semantic version of the CLI.
	Major = "0"
	Minor = "1"
	Patch = "0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders the version with per-segment colors for terminal output.
func Colored() string {
	return versionMajorColor.Sprint(Major) + "." +
		versionMinorColor.Sprint(Minor) + "." +
		versionPatchColor.Sprint(Patch)
}

// Plain renders the version without escape sequences, for protocol fields.
func Plain() string {
	return Major + "." + Minor + "." + Patch
}
