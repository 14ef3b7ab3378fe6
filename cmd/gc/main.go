package main

import (
	"os"

	"github.com/outthegc/gc-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
