package main

import (
	"os"

	"github.com/heavydutyrent/machinery-api/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
