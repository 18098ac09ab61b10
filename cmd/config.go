package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/vaxviz-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set vaxviz configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "indicator_path: %s\n", c.IndicatorPath)
		fmt.Fprintf(out, "metadata_path: %s\n", c.MetadataPath)
		if c.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", c.Sheet)
		}
		fmt.Fprintf(out, "output_dir: %s\n", c.OutputDir)
		if c.AssetsHost != "" {
			fmt.Fprintf(out, "assets_host: %s\n", c.AssetsHost)
		}
		fmt.Fprintf(out, "top_n: %d\n", c.TopN)
		fmt.Fprintf(out, "zero_base: %s\n", c.ZeroBase)
		fmt.Fprintf(out, "dedupe_metadata: %t\n", c.DedupeMetadata)
		fmt.Fprintf(out, "snapshots: %t\n", c.Snapshots)
		if c.Workbook != "" {
			fmt.Fprintf(out, "workbook: %s\n", c.Workbook)
		}
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "columns.country_code: %s\n", c.Columns.CountryCode)
		fmt.Fprintf(out, "columns.time_period: %s\n", c.Columns.TimePeriod)
		fmt.Fprintf(out, "columns.obs_value: %s\n", c.Columns.ObsValue)
		fmt.Fprintf(out, "columns.life_expectancy: %s\n", c.Columns.LifeExpectancy)
		fmt.Fprintf(out, "columns.gdp_per_capita: %s\n", c.Columns.GDPPerCapita)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := setKey(c, args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func setKey(c *cfgpkg.Global, key, val string) error {
	switch key {
	case "indicator_path":
		c.IndicatorPath = val
	case "metadata_path":
		c.MetadataPath = val
	case "sheet":
		c.Sheet = val
	case "output_dir":
		c.OutputDir = val
	case "assets_host":
		c.AssetsHost = val
	case "top_n":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for top_n: %v", val)
		}
		c.TopN = i
	case "zero_base":
		switch strings.ToLower(val) {
		case cfgpkg.ZeroBaseSkip, cfgpkg.ZeroBaseError:
			c.ZeroBase = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid zero_base: %s (use skip or error)", val)
		}
	case "dedupe_metadata", "snapshots":
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid bool for %s: %v", key, val)
		}
		if key == "snapshots" {
			c.Snapshots = b
		} else {
			c.DedupeMetadata = b
		}
	case "workbook":
		c.Workbook = val
	case "log_level":
		c.LogLevel = val
	case "columns.country_code":
		c.Columns.CountryCode = val
	case "columns.time_period":
		c.Columns.TimePeriod = val
	case "columns.obs_value":
		c.Columns.ObsValue = val
	case "columns.life_expectancy":
		c.Columns.LifeExpectancy = val
	case "columns.gdp_per_capita":
		c.Columns.GDPPerCapita = val
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
