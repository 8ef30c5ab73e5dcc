package main

import (
	"os"

	"newsletter/services/newsletter/internal/cli"
)

func main() {
	root := cli.NewRootCommand(cli.DefaultOptions())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
