package main

import (
	"os"

	"github.com/kailas-cloud/contactdex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
