package main

import (
	"os"

	"chatvault/cmd/chatvault/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
