package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plcc/internal/diag"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Scan Structured Text sources and report diagnostics",
	Long:  "Scan Structured Text sources without generating output, reporting everything the exporter would skip or reject.",
	RunE:  checkExecution,
}

func checkExecution(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	sources := args
	if len(sources) == 0 {
		manifest, manifestFound, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		if !manifestFound {
			return errors.New(noPlcTomlMessage)
		}
		sources, err = resolveManifestSources(manifest)
		if err != nil {
			return err
		}
	}

	bag := diag.NewBag(maxDiagnostics)
	_, units, err := scanSources(sources, bag)
	if err != nil {
		return err
	}

	reportDiagnostics(bag, quiet)
	if bag.HasErrors() {
		return fmt.Errorf("check finished with errors")
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d units, %d diagnostics\n", len(units), bag.Len())
	}
	return nil
}
