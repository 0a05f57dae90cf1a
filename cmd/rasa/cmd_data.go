package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/narendrapsgim/rasa/internal/format"
	"github.com/narendrapsgim/rasa/internal/importer"
	"github.com/narendrapsgim/rasa/pkg/advisory"
)

var dataFlags struct {
	data   []string
	format string
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect training data",
}

var dataInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the NLU training data found in the data paths",
	RunE:  runDataInspect,
}

func init() {
	f := dataInspectCmd.Flags()
	f.StringSliceVar(&dataFlags.data, "data", []string{"data"}, "Training data files or directories")
	f.StringVar(&dataFlags.format, "format", "text", "Output format (text, markdown)")

	dataCmd.AddCommand(dataInspectCmd)
}

func runDataInspect(cmd *cobra.Command, _ []string) error {
	mode, ok := format.ParseMode(dataFlags.format)
	if !ok {
		return fmt.Errorf("unknown output format %q", dataFlags.format)
	}

	collector := &advisory.Collector{}
	restore := advisory.SetSink(collector)
	defer restore()

	imp := importer.NewFileImporter("", dataFlags.data)
	td, err := imp.NLUData(cmd.Context())
	if err != nil {
		return fmt.Errorf("load nlu data: %w", err)
	}

	entities := make([]string, 0, len(td.Entities()))
	for e := range td.Entities() {
		entities = append(entities, e)
	}
	sort.Strings(entities)

	tb := format.NewTable(mode)
	tb.Header("Kind", "Count", "Values")
	tb.WrapColumn(3, 60)
	tb.Row("examples", len(td.Examples()), "")
	tb.Row("intents", len(td.Intents()), strings.Join(td.Intents(), ", "))
	tb.Row("entities", len(entities), strings.Join(entities, ", "))
	tb.Row("synonyms", len(td.EntitySynonyms()), "")
	tb.Row("regexes", len(td.RegexFeatures()), "")
	tb.Row("lookup tables", len(td.LookupTables()), "")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, tb.String())

	for _, a := range collector.Advisories() {
		fmt.Fprintf(out, "warning: %s\n", a.Message)
	}
	return nil
}
