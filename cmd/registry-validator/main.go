package main

import (
	"os"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
