// Command colreco runs the detector-response reconstruction pipeline
// described by a YAML configuration file against a generator-level input
// file, writing the reconstructed candidate arrays to an HDF5 output file.
// Grounded on the teacher's decoder/main.go control flow (load config →
// open input → build pipeline → loop over events → Finish), restructured
// as a cobra.Command tree per inference-sim's cmd/ package.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
