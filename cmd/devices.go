package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icco/synthd/internal/audioio"
	"github.com/icco/synthd/internal/midiio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available MIDI input and audio output devices",
	Run:   runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) {
	ins, err := midiio.ListInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing midi inputs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("MIDI inputs:")
	if len(ins) == 0 {
		fmt.Println("  (none found; a virtual port is still available as \"virtual\")")
	}
	for _, name := range ins {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("  virtual (creates a new virtual MIDI destination)")

	fmt.Println()
	fmt.Println("Audio outputs:")
	for _, name := range audioio.ListOutputs() {
		fmt.Printf("  %s\n", name)
	}
}
