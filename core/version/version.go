package version

// Version is the current release of stubgen. Overridden at build time with
// -ldflags "-X github.com/stubgen/stubgen/core/version.Version=...".
var Version = "0.2.0"
