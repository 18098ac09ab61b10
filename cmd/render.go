package cmd

import (
	"github.com/KaramelBytes/vaxviz-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

// Render flags; only flags that were set override the configuration.
var (
	rndIndicator string
	rndMetadata  string
	rndOutDir    string
	rndTop       int
	rndZeroBase  string
	rndSnapshots bool
	rndWorkbook  string
	rndDedupe    bool
	rndSheet     string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Load, join and aggregate the inputs and write the HTML charts",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	addRenderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&rndIndicator, "indicator", "", "indicator table (.csv, .tsv or .xlsx)")
	f.StringVar(&rndMetadata, "metadata", "", "metadata table (.csv, .tsv or .xlsx)")
	f.StringVarP(&rndOutDir, "out-dir", "o", "", "directory for the generated files")
	f.IntVar(&rndTop, "top", 0, "number of countries in the growth ranking")
	f.StringVar(&rndZeroBase, "zero-base", "", "growth with a zero first observation: skip|error")
	f.BoolVar(&rndSnapshots, "snapshots", false, "also write PNG snapshots of the charts")
	f.StringVar(&rndWorkbook, "workbook", "", "write a summary .xlsx workbook (file name or path)")
	f.BoolVar(&rndDedupe, "dedupe-metadata", false, "keep only the first metadata row per country and year")
	f.StringVar(&rndSheet, "sheet", "", "worksheet to read from .xlsx inputs")
}

func runRender(cmd *cobra.Command, args []string) error {
	c, err := requireConfig()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("indicator") {
		c.IndicatorPath = rndIndicator
	}
	if f.Changed("metadata") {
		c.MetadataPath = rndMetadata
	}
	if f.Changed("out-dir") {
		c.OutputDir = rndOutDir
	}
	if f.Changed("top") {
		c.TopN = rndTop
	}
	if f.Changed("zero-base") {
		c.ZeroBase = rndZeroBase
	}
	if f.Changed("snapshots") {
		c.Snapshots = rndSnapshots
	}
	if f.Changed("workbook") {
		c.Workbook = rndWorkbook
	}
	if f.Changed("dedupe-metadata") {
		c.DedupeMetadata = rndDedupe
	}
	if f.Changed("sheet") {
		c.Sheet = rndSheet
	}

	log := newLogger(cmd, c)
	_, err = pipeline.Run(cmd.Context(), c, log, cmd.OutOrStdout())
	return err
}
