package main

import (
	"os"

	"github.com/cardledger-dev/cardledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
