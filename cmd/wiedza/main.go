package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/praksa-labs/wiedza-cli/internal/adapters/driving/cli"
)

func main() {
	// A .env in the working directory is a convenience for development;
	// missing files are fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
