// ABOUTME: Version constants for the untracker tool
// ABOUTME: Single place to bump release metadata
package version

const (
	// Product is the tool name reported by -version.
	Product = "untracker"

	// Version is the release version. Bumped on tagged releases.
	Version = "0.1.0"
)
