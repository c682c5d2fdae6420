package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable line to stdout.
func outputHuman(format string, args ...any) {
	fmt.Printf(format, args...)
}

// emit writes v as JSON, or calls human(v) when --human is set, letting
// each subcommand supply its own human-readable rendering.
func emit(v any, human func()) error {
	if humanOutput {
		human()
		return nil
	}
	return outputJSON(v)
}

// ErrorResponse is the JSON error shape for exitWithError.
type ErrorResponse struct {
	Error string `json:"error"`
}

func exitWithError(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		_ = outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}
