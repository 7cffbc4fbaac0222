package main

import (
	"os"

	"github.com/01org/yarpgen/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
