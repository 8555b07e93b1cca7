// ABOUTME: Version and product identification
// ABOUTME: Reported by --version and in startup logs
package version

import "fmt"

const (
	// Version is overridden at release time
	Version = "0.3.0"

	// Product is the user-facing program name
	Product = "enginesound"

	// Manufacturer appears in --version output
	Manufacturer = "Resonate Protocol"
)

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("%s %s (%s)", Product, Version, Manufacturer)
}
