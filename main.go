package main

import (
	"os"

	"github.com/electomaps/turnoutmap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
