package main

import (
	"os"

	"github.com/konnash/konnash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
