package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ahorro-energia/domain"
	"ahorro-energia/format"
	"ahorro-energia/service"
)

func newMunicipalitiesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "municipios",
		Aliases: []string{"municipalities"},
		Short:   "Consulta y registra municipios",
	}
	cmd.AddCommand(newMunicipalitiesListCmd(opts), newMunicipalitiesAddCmd(opts))
	return cmd
}

func newMunicipalitiesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"listar"},
		Short:   "Lista los municipios en el orden del registro",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return renderMunicipalities(cmd.OutOrStdout(), opts.app.Municipalities.List())
		},
	}
}

func newMunicipalitiesAddCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agregar <nombre>",
		Aliases: []string{"add"},
		Short:   "Registra un municipio a partir de dos de: consumo, costo y tarifa",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.NewMunicipalityInput{
				Name:           args[0],
				ConsumptionKwh: optionalFloat(cmd, "consumo"),
				Cost:           optionalFloat(cmd, "costo"),
				RatePerKwh:     optionalFloat(cmd, "tarifa"),
				SavingsPercent: optionalFloat(cmd, "ahorro"),
			}

			m, err := opts.app.Municipalities.DeriveAndInsert(input)
			if err != nil {
				return err
			}

			derived, _ := service.MissingLinkedField(input)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Municipio %q registrado con clave %s (campo calculado: %s)\n", m.Name, m.Key, derived)
			return renderMunicipalities(out, opts.app.Municipalities.List())
		},
	}

	cmd.Flags().Float64("consumo", 0, "consumo promedio mensual en kWh")
	cmd.Flags().Float64("costo", 0, "costo promedio mensual en pesos")
	cmd.Flags().Float64("tarifa", 0, "tarifa en pesos por kWh")
	cmd.Flags().Float64("ahorro", 0, "porcentaje de ahorro estimado (0-100)")
	return cmd
}

func renderMunicipalities(w io.Writer, list []domain.Municipality) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLAVE\tMUNICIPIO\tCONSUMO\tCOSTO\tTARIFA\tAHORRO")
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Key,
			m.Name,
			format.Kwh(m.AverageConsumptionKwh),
			format.Currency(m.AverageCost),
			format.Currency(m.RatePerKwh),
			format.Percent(m.SavingsPercent),
		)
	}
	return tw.Flush()
}
