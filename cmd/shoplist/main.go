package main

import (
	"context"
	"os"

	"github.com/idilsaglam/shoplist/internal/cli"
)

func main() {
	// Hand everything after the program name to the CLI runner.
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
