package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/cwvhist/cwvhist/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0-dev"

func main() {
	// Optional .env for CWVHIST_CONFIG and friends; absence is fine.
	_ = godotenv.Load()

	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "cwvhist: %v\n", err)
		os.Exit(1)
	}
}
