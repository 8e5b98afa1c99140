// Package main is the entry point for the teamrank CLI, which rates and
// ranks players from two-player team tournament results.
package main

import "github.com/pable/go-team-rank/cmd"

func main() {
	cmd.Execute()
}
