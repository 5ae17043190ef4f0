package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ahorro-energia/format"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comparar",
		Aliases: []string{"compare"},
		Short:   "Ordena los municipios por ahorro anual con la misma entrada",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := opts.app.Comparison.Compare(
				optionalFloat(cmd, "consumo"),
				optionalFloat(cmd, "costo"),
			)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tMUNICIPIO\tCOSTO ACTUAL\tAHORRO MENSUAL\tAHORRO ANUAL\tKWH AHORRADOS")
			for _, r := range result.Rankings {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					r.Rank,
					r.Municipality.Name,
					format.Currency(r.Result.FinalCost),
					format.Currency(r.Result.MonthlySavings),
					format.Currency(r.Result.AnnualSavings),
					format.Kwh(r.Result.KwhSavedPerMonth),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Float64("consumo", 0, "consumo mensual en kWh")
	cmd.Flags().Float64("costo", 0, "costo mensual de la factura en pesos")
	cmd.MarkFlagsMutuallyExclusive("consumo", "costo")
	return cmd
}
