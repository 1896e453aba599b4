// Package main is the entry point for the handcast game client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "handcast",
	Short: "Gesture-driven spell casting trainer",
	Long: `Handcast turns a hand-tracking feed into spell casting practice:
close a fist, shape a trigger gesture to charge, open the palm to release.
Projectiles fly at a training dummy while mana, combo and experience are
tracked across the session.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(playCmd)
}
