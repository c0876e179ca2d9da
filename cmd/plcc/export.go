package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plcc/internal/ast"
	"plcc/internal/diag"
	"plcc/internal/observ"
	"plcc/internal/source"
	"plcc/internal/stscan"
	"plcc/internal/xmlgen"
	"plcc/internal/xmltree"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] [files...]",
	Short: "Export Structured Text sources to PLCopenXML",
	Long:  "Export Structured Text sources to PLCopenXML, using plc.toml for the project definition when no files are given.",
	RunE:  exportExecution,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file path (defaults to <project>.xml)")
	exportCmd.Flags().String("project-name", "", "project name for the content header")
	exportCmd.Flags().Bool("omron", true, "apply Sysmac Studio vendor quirks")
}

func exportExecution(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	projectName, err := cmd.Flags().GetString("project-name")
	if err != nil {
		return err
	}
	omron, err := cmd.Flags().GetBool("omron")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
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
		if projectName == "" {
			projectName = manifest.Config.Package.Name
		}
		if output == "" && manifest.Config.Export.Output != "" {
			output = filepath.Join(manifest.Root, filepath.FromSlash(manifest.Config.Export.Output))
		}
		if !cmd.Flags().Changed("omron") && manifest.Config.Export.Omron != nil {
			omron = *manifest.Config.Export.Omron
		}
	}
	if output == "" {
		output = defaultOutputName(projectName, sources)
	}

	timer := observ.NewTimer()
	bag := diag.NewBag(maxDiagnostics)

	phase := timer.Begin("scan")
	files, units, err := scanSources(sources, bag)
	timer.End(phase, fmt.Sprintf("%d files", len(sources)))
	if err != nil {
		return err
	}

	gen := xmlgen.NewGenerator(xmlgen.GenerationParameters{
		ProjectName:    projectName,
		OutputXMLOmron: omron,
	}, files, bag)

	phase = timer.Begin("translate")
	gen.Translate(units)
	timer.End(phase, fmt.Sprintf("%d units", len(units)))

	phase = timer.Begin("write")
	writeErr := xmltree.WriteFile(output, gen.Document())
	timer.End(phase, output)

	reportDiagnostics(bag, quiet)
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if writeErr != nil {
		return writeErr
	}
	if bag.HasErrors() {
		return fmt.Errorf("export finished with errors")
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "exported %s\n", output)
	}
	return nil
}

// scanSources loads every source into one file set and scans each into a
// compilation unit. Scanner warnings land in the bag; only I/O failures
// abort the run.
func scanSources(paths []string, bag *diag.Bag) (*source.FileSet, []*ast.CompilationUnit, error) {
	files := source.NewFileSet()
	units := make([]*ast.CompilationUnit, 0, len(paths))
	for _, path := range paths {
		id, err := files.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		unit, err := stscan.Scan(files, id, bag)
		if err != nil {
			return nil, nil, err
		}
		units = append(units, unit)
	}
	return files, units, nil
}

func defaultOutputName(projectName string, sources []string) string {
	if projectName != "" {
		return projectName + ".xml"
	}
	if len(sources) > 0 {
		base := filepath.Base(sources[0])
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
	}
	return "project.xml"
}

func reportDiagnostics(bag *diag.Bag, quiet bool) {
	if bag.Len() == 0 {
		return
	}
	if quiet && !bag.HasErrors() {
		return
	}
	bag.Dump(os.Stderr)
}
