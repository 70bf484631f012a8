package cmd

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// startProgress shows a spinner on stderr and returns the function that
// stops it. The spinner stays silent when stderr is not a terminal.
func startProgress(message string, quiet bool) func() {
	if quiet {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}
