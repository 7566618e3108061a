// Package main is the entry point for deployctl, the helper CLI that
// builds the service image and manages its container.
package main

import (
	"emicalc/internal/cli"
)

// version is set via ldflags at release time.
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
