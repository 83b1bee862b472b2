package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/mhdash/internal/config"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set mhdash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settings()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "data_file: %s\n", c.DataFile)
		fmt.Fprintf(out, "listen_addr: %s\n", c.ListenAddr)
		fmt.Fprintf(out, "log_level: %s\n", c.LogLevel)
		fmt.Fprintf(out, "default_countries: %s\n", strings.Join(c.DefaultCountries, ", "))
		fmt.Fprintf(out, "default_occupations: %s\n", strings.Join(c.DefaultOccupations, ", "))
		fmt.Fprintf(out, "female_only_occupations: %s\n", strings.Join(c.FemaleOnlyOccupations, ", "))
		fmt.Fprintf(out, "chart_width: %d\n", c.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", c.ChartHeight)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. List keys take a comma-separated value.\nKeys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		switch key {
		case "data_file":
			c.DataFile = val
		case "listen_addr":
			c.ListenAddr = val
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "error":
				c.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "default_countries":
			c.DefaultCountries = utils.SplitList(val)
		case "default_occupations":
			c.DefaultOccupations = utils.SplitList(val)
		case "female_only_occupations":
			c.FemaleOnlyOccupations = utils.SplitList(val)
		case "chart_width", "chart_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid positive int for %s: %v", key, val)
			}
			if key == "chart_width" {
				c.ChartWidth = i
			} else {
				c.ChartHeight = i
			}
		default:
			return fmt.Errorf("unknown key: %s (use one of: %s)", key, strings.Join(cfgpkg.Keys, ", "))
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
