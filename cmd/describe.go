package cmd

import (
	"fmt"

	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
	"github.com/KaramelBytes/vaxviz-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	descSheet string
	descKind  string
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print the shape, inferred column types and statistics of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := dataset.Load(args[0], dataset.LoadOptions{Sheet: descSheet})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), t.Describe())

		if descKind == "" {
			return nil
		}
		c, err := requireConfig()
		if err != nil {
			return err
		}
		cols := pipeline.Columns(c.Columns)
		switch descKind {
		case "indicator":
			err = t.Require(cols.IndicatorColumns()...)
		case "metadata":
			err = t.Require(cols.MetadataColumns()...)
		default:
			return fmt.Errorf("unsupported --check: %s (use indicator or metadata)", descKind)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s has every %s column\n", t.Name, descKind)
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&descSheet, "sheet", "", "worksheet to read from .xlsx files")
	describeCmd.Flags().StringVar(&descKind, "check", "", "verify the configured columns are present: indicator|metadata")
	rootCmd.AddCommand(describeCmd)
}
