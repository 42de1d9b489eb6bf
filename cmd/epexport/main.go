// Package main is the entry point for the epexport CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cory-johannsen/epexport/cmd/internal"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
