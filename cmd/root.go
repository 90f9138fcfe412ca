package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "synthd",
	Short: "A real-time, multi-instrument software synthesizer driven by live MIDI",
	Long: `synthd renders audio in real time from a declarative configuration file:
any number of 16-voice polyphonic synths, one-shot drum voices and
monophonic control-voltage generators, each bound to its own MIDI
channel and output channel, mixed down to a single audio stream.

Example:
  synthd run --config synthd.toml
  synthd devices
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
