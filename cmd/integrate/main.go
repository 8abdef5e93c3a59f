package main

import (
	"os"

	"github.com/alexshd/integrate/cmd/integrate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
}
