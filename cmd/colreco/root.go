package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "colreco",
	Short: "Collider detector-response reconstruction pipeline",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateConfigCmd)
}
