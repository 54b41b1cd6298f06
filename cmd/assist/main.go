package main

import (
	"fmt"
	"os"

	"github.com/ashwch/assist/cmd/assist/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "assist: %v\n", err)
		os.Exit(1)
	}
}
