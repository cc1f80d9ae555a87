package main

import (
	"os"

	"github.com/rustyeddy/rtracker/cmd/rtracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
