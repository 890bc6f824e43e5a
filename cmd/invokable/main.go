// Package main provides the entry point for the invokable demo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/zoobzio/invokable/cmd/invokable/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
