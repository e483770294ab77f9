package main

import (
	"os"

	"github.com/juju-solutions/bigdata-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
