package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/auditsim/internal/commands"
)

func main() {
	// AUDITSIM_* overrides may live in a local .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
