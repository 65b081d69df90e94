package main

import (
	"fmt"
	"os"
	"time"

	"futuremirror/cmd/futuremirror/commands"

	"github.com/getsentry/sentry-go"
)

func main() {
	err := commands.Execute()
	sentry.Flush(2 * time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
