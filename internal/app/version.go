package app

import "fmt"

// Stamped at build time with
// -ldflags "-X github.com/stockroom/replenish-backend/internal/app.Version=v1.4.0".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// BuildVersion is the version line shown by replenishctl and logged at startup.
func BuildVersion() string {
	return fmt.Sprintf("%s+%s (%s)", Version, Commit, BuildTime)
}
