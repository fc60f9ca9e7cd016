package main

import (
	"os"

	"github.com/ecairns22/PipCaptain/cmd/pipcaptain/commands"
)

func main() {
	if err := commands.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
