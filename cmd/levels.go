package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mhdash/internal/analysis"
	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/render"
	"github.com/KaramelBytes/mhdash/internal/survey"
)

var levelsVocabulary bool

var levelsCmd = &cobra.Command{
	Use:   "levels [column]",
	Short: "List the distinct values of a column, or the columns of the data file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if levelsVocabulary {
			vocab := analysis.Vocabulary()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Answer", "Score"})
			for _, tok := range analysis.Tokens() {
				table.Append([]string{tok, strconv.FormatFloat(vocab[tok], 'g', -1, 64)})
			}
			table.Render()
			return nil
		}
		t, err := loadTable()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Fprintf(out, "%s: %d rows\n", t.Name, t.Len())
			render.WriteLevels(out, "Column", t.Columns)
			return nil
		}
		col := survey.NormalizeColumnName(args[0])
		if !t.Has(col) {
			return &survey.ColumnError{Column: col}
		}
		kind := "free text"
		if t.IsCategorical(col) {
			kind = "categorical"
		}
		fmt.Fprintf(out, "%s (%s)\n", dashboard.Label(col), kind)
		render.WriteLevels(out, dashboard.Label(col), t.Levels(col))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(levelsCmd)
	levelsCmd.Flags().BoolVar(&levelsVocabulary, "vocabulary", false, "print the answer recoding table instead")
}
