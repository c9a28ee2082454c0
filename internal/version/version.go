// ABOUTME: Version constants for the voice studio
// ABOUTME: Single source of truth for product identification
package version

const (
	// Version is the current release version
	Version = "0.1.0"

	// Product is the product name reported to providers and logs
	Product = "Voice Studio"

	// Manufacturer identifies the project
	Manufacturer = "Gemini Voice Studio Project"
)
