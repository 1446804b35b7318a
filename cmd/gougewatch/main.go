package main

import (
	"gougewatch/internal/cli"
	_ "gougewatch/internal/fetcher/providers"
	_ "gougewatch/internal/sections/widgets"
)

// These variables are populated by the release build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
