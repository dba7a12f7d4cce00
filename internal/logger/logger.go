package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the default logger for CLI use. Command output goes to
// stdout, so all log lines are routed to stderr to keep piped output clean.
func Setup(verbose bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	if verbose {
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
