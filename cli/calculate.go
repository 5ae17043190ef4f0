package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"ahorro-energia/domain"
	"ahorro-energia/format"
)

func newCalculateCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "calcular <municipio>",
		Aliases: []string{"calculate"},
		Short:   "Calcula el ahorro mensual y anual para un municipio",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.SavingsInput{
				MunicipalityKey: args[0],
				ConsumptionKwh:  optionalFloat(cmd, "consumo"),
				Cost:            optionalFloat(cmd, "costo"),
			}

			report, err := opts.app.Savings.Calculate(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return renderReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Float64("consumo", 0, "consumo mensual en kWh")
	cmd.Flags().Float64("costo", 0, "costo mensual de la factura en pesos")
	cmd.MarkFlagsMutuallyExclusive("consumo", "costo")
	cmd.Flags().BoolVar(&asJSON, "json", false, "imprime el resultado en JSON")
	return cmd
}

func renderReport(w io.Writer, report domain.SavingsReport) error {
	m := report.Municipality
	r := report.Result

	consumption := format.Kwh(r.FinalConsumptionKwh)
	if r.FinalConsumptionKwh != math.Trunc(r.FinalConsumptionKwh) {
		consumption = format.KwhPrecise(r.FinalConsumptionKwh)
	}

	lines := []string{
		fmt.Sprintf("Municipio:              %s", m.Name),
		fmt.Sprintf("Consumo:                %s", consumption),
		fmt.Sprintf("Costo actual:           %s", format.Currency(r.FinalCost)),
		fmt.Sprintf("Costo con renovables:   %s", format.Currency(r.RenewableCost)),
		fmt.Sprintf("Ahorro mensual:         %s", format.Currency(r.MonthlySavings)),
		fmt.Sprintf("Porcentaje de ahorro:   %s", format.Percent(r.SavingsPercent)),
		fmt.Sprintf("kWh ahorrados al mes:   %s", format.Kwh(r.KwhSavedPerMonth)),
		fmt.Sprintf("Ahorro anual:           %s", format.Currency(r.AnnualSavings)),
	}
	if r.CO2ReducedKgPerYear != nil {
		lines = append(lines, fmt.Sprintf("CO2 evitado al año:     %s", format.Kg(*r.CO2ReducedKgPerYear)))
	}
	if report.Explanation != "" {
		lines = append(lines, "", report.Explanation)
	}
	if report.BenefitMessage != "" {
		lines = append(lines, "", report.BenefitMessage)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
