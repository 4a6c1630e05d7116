package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hepsim/colreco/genreader"
	"github.com/hepsim/colreco/modpipe"
	"github.com/hepsim/colreco/reccfg"
	"github.com/hepsim/colreco/writer"
)

var (
	runConfigPath   string
	runInputPath    string
	runInputFormat  string
	runOutputPath   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconstruction pipeline over an input event file",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "pipeline configuration YAML file (required)")
	runCmd.Flags().StringVar(&runInputPath, "input", "", "generator-level input event file (required)")
	runCmd.Flags().StringVar(&runInputFormat, "input-format", "lhe", "input file format: lhe or hepmc")
	runCmd.Flags().StringVar(&runOutputPath, "output", "", "HDF5 output file (required)")
	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("input")
	runCmd.MarkFlagRequired("output")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	logger := modpipe.NewLogger(os.Stdout, os.Stderr)

	doc, err := reccfg.Load(runConfigPath)
	if err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}

	reader, err := openReader(runInputPath, runInputFormat)
	if err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}
	genMod := genreader.New("GenInput", reader)

	runner, registry, err := buildRunner(doc, genMod, logger)
	if err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}

	if err := runner.Init(); err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}

	out, err := writer.Open(runOutputPath)
	if err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}
	defer out.Close()

	maxEvents := doc.MaxEvents
	for n := 0; maxEvents < 0 || n < maxEvents; n++ {
		if err := runner.ProcessEvent(); err != nil {
			logger.Warn("event processing failed, skipping", "error", err)
			continue
		}
		if genMod.Done {
			break
		}
		if err := writeExportedArrays(out, registry); err != nil {
			return fmt.Errorf("colreco run: %w", err)
		}
	}

	if err := runner.Finish(); err != nil {
		return fmt.Errorf("colreco run: %w", err)
	}
	return nil
}

func openReader(path, format string) (genreader.Reader, error) {
	switch format {
	case "lhe":
		return genreader.OpenLHE(path)
	case "hepmc":
		return genreader.OpenHepMC(path)
	default:
		return nil, fmt.Errorf("unknown input format %q, want lhe or hepmc", format)
	}
}

// writeExportedArrays flushes every currently-registered array to the
// output file, sorted by name for deterministic group ordering.
func writeExportedArrays(out *writer.Writer, registry *modpipe.Registry) error {
	arrays := registry.ExportedArrays()
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := out.WriteArray(name, arrays[name].Candidates); err != nil {
			return err
		}
	}
	return nil
}
