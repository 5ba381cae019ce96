// Package version exposes the build version of windcalc.
package version

// version is set at build time:
//
//	go build -ldflags "-X github.com/mycarta/wind-calculator-v3/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Overridden by the linker.
var version = "dev"

// GetVersion returns the build version, "dev" for untagged builds.
func GetVersion() string {
	return version
}
