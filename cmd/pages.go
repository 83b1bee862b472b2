package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/render"
	"github.com/KaramelBytes/mhdash/internal/utils"
)

var (
	summaryOut outputFlags

	countryOut       outputFlags
	countryCountries string
	countryFactor    string

	occOut         outputFlags
	occOccupations string
	occFactor      string
	occGender      string

	ovOut        outputFlags
	ovFactor     string
	ovProjection string
	ovIntensity  float64
	ovRotate     bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Low/High split of every stress factor over all respondents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		v := newDashboard().Summary(t)
		return summaryOut.emit(cmd, v, v.Status == dashboard.StatusOK, v.Warnings, func(w io.Writer) {
			fmt.Fprintf(w, "Countries: %d  Respondents: %d\n", v.Countries, v.Respondents)
			render.WriteSummary(w, v)
		})
	},
}

var countryCmd = &cobra.Command{
	Use:     "country",
	Short:   "Bin one stress factor over the selected countries",
	Example: `  mhdash country --countries "United States,Canada" --factor growing_stress
  mhdash country --countries "All Countries" --chart out/country.svg`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		d := newDashboard()
		countries := utils.SplitList(countryCountries)
		if !cmd.Flags().Changed("countries") {
			countries = d.DefaultCountries(t)
		}
		v, err := d.Country(t, dashboard.CountryQuery{Countries: countries, Factor: countryFactor})
		if err != nil {
			return err
		}
		return countryOut.emit(cmd, v, factorStatus(v), v.Warnings, func(w io.Writer) { writeFactorTable(w, v) })
	},
}

var occupationCmd = &cobra.Command{
	Use:     "occupation",
	Short:   "Bin one factor over the selected occupations and gender",
	Example: `  mhdash occupation --occupations Corporate,Student --gender Female --factor work_interest`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		d := newDashboard()
		occupations := utils.SplitList(occOccupations)
		if !cmd.Flags().Changed("occupations") {
			occupations = d.DefaultOccupations(t)
		}
		v, err := d.Occupation(t, dashboard.OccupationQuery{Occupations: occupations, Factor: occFactor, Gender: occGender})
		if err != nil {
			return err
		}
		return occOut.emit(cmd, v, factorStatus(v), v.Warnings, func(w io.Writer) { writeFactorTable(w, v) })
	},
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Quick stats, answer breakdown and surveys per country",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		q := dashboard.OverviewQuery{Factor: ovFactor, Projection: ovProjection, Rotate: ovRotate}
		if cmd.Flags().Changed("intensity") {
			q.Intensity = &ovIntensity
		}
		v, err := newDashboard().Overview(t, q)
		if err != nil {
			return err
		}
		return ovOut.emit(cmd, v, v.Status == dashboard.StatusOK, v.Warnings, func(w io.Writer) {
			fmt.Fprintf(w, "Responses: %d  Countries: %d", v.Responses, v.Countries)
			if v.Gender != nil {
				fmt.Fprintf(w, "  Male: %.1f%%  Female: %.1f%%", v.Gender.MalePct, v.Gender.FemalePct)
			}
			fmt.Fprintln(w)
			if len(v.Breakdown) > 0 {
				render.WriteBreakdown(w, v)
			}
			if v.Map != nil {
				fmt.Fprintf(w, "Map: %s projection, z-max %.1f, rotation %.0f°\n", v.Map.Projection, v.Map.ZMax, v.Map.RotationLon)
				render.WriteCountries(w, v)
			}
		})
	},
}

func writeFactorTable(w io.Writer, v *dashboard.FactorView) {
	fmt.Fprintf(w, "%s (min %g, max %g) responses: %d  male: %d  female: %d\n",
		v.Label, v.Bounds.Min, v.Bounds.Max, v.Responses.Total, v.Responses.Male, v.Responses.Female)
	render.WriteCounts(w, v.Counts)
}

func init() {
	rootCmd.AddCommand(summaryCmd, countryCmd, occupationCmd, overviewCmd)

	summaryOut.register(summaryCmd)

	countryOut.register(countryCmd)
	countryCmd.Flags().StringVar(&countryCountries, "countries", "", `comma-separated countries ("All Countries" selects every country)`)
	countryCmd.Flags().StringVar(&countryFactor, "factor", "", "stress factor column or label (default growing_stress)")

	occOut.register(occupationCmd)
	occupationCmd.Flags().StringVar(&occOccupations, "occupations", "", "comma-separated occupations")
	occupationCmd.Flags().StringVar(&occFactor, "factor", "", "factor column or label (default growing_stress)")
	occupationCmd.Flags().StringVar(&occGender, "gender", "All", "gender filter: All|Male|Female")

	ovOut.register(overviewCmd)
	overviewCmd.Flags().StringVar(&ovFactor, "factor", "", "stress factor for the answer breakdown")
	overviewCmd.Flags().StringVar(&ovProjection, "projection", "orthographic", "map projection: orthographic|natural earth|mercator")
	overviewCmd.Flags().Float64Var(&ovIntensity, "intensity", 1.0, "map color intensity (0.5-1.5)")
	overviewCmd.Flags().BoolVar(&ovRotate, "rotate", false, "rotate the globe to longitude 90")
}
