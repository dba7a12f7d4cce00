package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// It prints a user-friendly message by default. If the --verbose flag is
// set, it prints the full technical error instead.
func PrintError(userMsg string, technicalErr error) {
	if isVerbose() && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError records an error at debug level; nothing is shown unless
// verbose mode is on.
func LogError(msg string, err error) {
	if err != nil {
		log.Debug(msg, "error", err)
	} else {
		log.Debug(msg)
	}
}
