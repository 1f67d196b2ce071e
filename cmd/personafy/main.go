package main

import (
	"fmt"
	"os"

	"github.com/personafy/personafy/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Cli(version); err != nil {
		fmt.Fprintf(os.Stderr, "personafy: %v\n", err)
		os.Exit(1)
	}
}
