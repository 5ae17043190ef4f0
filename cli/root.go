// Package cli wires configuration, storage and services into the ahorro
// command: an HTTP server plus one-shot subcommands for the terminal.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
	debug      bool
	lookupEnv  func(string) (string, bool)
	app        *App
}

// NewRootCmd creates the root command reading the process environment.
func NewRootCmd(version string) *cobra.Command {
	return NewRootCmdWithEnv(version, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for tests.
func NewRootCmdWithEnv(version string, lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &rootOptions{lookupEnv: lookupEnv}

	cmd := &cobra.Command{
		Use:           "ahorro",
		Short:         "Simulador de ahorro con energías renovables",
		Long:          "ahorro: estima cuánto puede ahorrar un hogar del Caribe colombiano al pasarse a energías renovables",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := opts.buildApp(cmd)
			if err != nil {
				return err
			}
			opts.app = app
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if opts.app == nil {
				return nil
			}
			return opts.app.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a yaml config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServeCmd(opts),
		newCalculateCmd(opts),
		newMunicipalitiesCmd(opts),
		newCompareCmd(opts),
	)

	return cmd
}

const rootCmdExample = `  # Ahorro con el consumo promedio de Riohacha
  ahorro calcular riohacha

  # Ahorro a partir de la factura mensual
  ahorro calcular santa_marta --costo 60000

  # Registrar un municipio con consumo y costo (la tarifa se calcula)
  ahorro municipios agregar "Maicao" --consumo 100 --costo 55000 --ahorro 20

  # Comparar todos los municipios con el mismo consumo
  ahorro comparar --consumo 150

  # Levantar la API HTTP
  ahorro serve --config ahorro.yaml`
