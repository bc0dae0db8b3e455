package main

import (
	"fmt"
	"os"

	"github.com/epmk/buildgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "buildgate: %v\n", err)
		os.Exit(1)
	}
}
