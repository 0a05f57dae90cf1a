package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/narendrapsgim/rasa/internal/format"
	"github.com/narendrapsgim/rasa/internal/importer"
	"github.com/narendrapsgim/rasa/internal/validation"
	"github.com/narendrapsgim/rasa/pkg/advisory"
	"github.com/narendrapsgim/rasa/pkg/graph"
)

var validateFlags struct {
	config string
	domain string
	data   []string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration against training data and domain",
	Long: `Loads the pipeline configuration, the training data and the domain,
then runs every consistency check. Warnings are printed as a findings
table; the first hard mismatch fails the command.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFlags.config, "config", "c", "config.yml", "Pipeline configuration file")
	f.StringVarP(&validateFlags.domain, "domain", "d", "", "Domain file (optional)")
	f.StringSliceVar(&validateFlags.data, "data", []string{"data"}, "Training data files or directories")
	f.StringVar(&validateFlags.format, "format", "text", "Findings output format (text, markdown)")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	mode, ok := format.ParseMode(validateFlags.format)
	if !ok {
		return fmt.Errorf("unknown output format %q", validateFlags.format)
	}

	schema, err := graph.LoadConfig(validateFlags.config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	collector := &advisory.Collector{}
	restore := advisory.SetSink(collector)
	defer restore()

	imp := importer.NewFileImporter(validateFlags.domain, validateFlags.data)
	verr := validation.New(schema).Validate(cmd.Context(), imp)

	out := cmd.OutOrStdout()
	if collector.Len() > 0 || verr != nil {
		fmt.Fprintln(out, format.FindingsTable(mode, collector.Advisories(), verr))
	}
	if verr != nil {
		return fmt.Errorf("configuration is not trainable: %w", verr)
	}

	fmt.Fprintf(out, "Configuration is trainable (%d warning(s)).\n", collector.Len())
	return nil
}
