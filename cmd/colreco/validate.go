package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hepsim/colreco/genreader"
	"github.com/hepsim/colreco/modpipe"
	"github.com/hepsim/colreco/reccfg"
)

var validateConfigPath string

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Parse a pipeline configuration and resolve its module graph without running any events",
	RunE:  validateConfig,
}

func init() {
	validateConfigCmd.Flags().StringVar(&validateConfigPath, "config", "", "pipeline configuration YAML file (required)")
	validateConfigCmd.MarkFlagRequired("config")
}

// validateConfig runs every module's Init and resolves the named-array
// registry, surfacing ConfigError/ResolveError without opening an input
// file or writing output, so a malformed module graph is caught before a
// real run starts.
func validateConfig(cmd *cobra.Command, args []string) error {
	logger := modpipe.NewLogger(os.Stdout, os.Stderr)

	doc, err := reccfg.Load(validateConfigPath)
	if err != nil {
		return fmt.Errorf("colreco validate-config: %w", err)
	}

	genMod := genreader.New("GenInput", noopReader{})
	runner, _, err := buildRunner(doc, genMod, logger)
	if err != nil {
		return fmt.Errorf("colreco validate-config: %w", err)
	}

	if err := runner.Init(); err != nil {
		return fmt.Errorf("colreco validate-config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "configuration %q is valid: %d module(s) wired\n", validateConfigPath, len(doc.Modules)+1)
	return nil
}

// noopReader lets validate-config resolve the module graph without an
// input file: Init runs the same as in a real run, and the reader
// goroutine it starts gets end-of-input from the first Next call, so no
// event is ever yielded.
type noopReader struct{}

func (noopReader) Next() (*genreader.Event, error, bool) { return nil, nil, false }
func (noopReader) Close() error                          { return nil }
