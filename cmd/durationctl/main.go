// Package main is the entrypoint of durationctl.
package main

import "github.com/amirhossein-jamali/calendar-duration/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
