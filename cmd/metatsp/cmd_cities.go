package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metatsp/config"
	"github.com/katalvlaran/metatsp/tsp"
)

func newCitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities",
		Short: "Generate or inspect city files",
	}
	cmd.AddCommand(newCitiesGenCmd(), newCitiesShowCmd())

	return cmd
}

func newCitiesGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random cities",
		Long: `Generate random cities on integer coordinates inside the configured
field (default 1200x800 with a 50-unit margin) and write them as YAML.

Examples:
  metatsp cities gen --n 40 --seed 3 --out cities.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			outPath, _ := cmd.Flags().GetString("out")

			cities, err := tsp.RandomCities(cfg.Cities.Count, cfg.Cities.Bounds(), tsp.NewRNG(cfg.Seed))
			if err != nil {
				return err
			}
			if outPath == "" {
				jsonOut, _ := cmd.Flags().GetBool("json")
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), cities)
				}
				for i, c := range cities {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%g\t%g\n", i, c.X, c.Y)
				}
				return nil
			}
			if err = config.SaveCities(outPath, cities); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d cities to %s\n", len(cities), outPath)

			return nil
		},
	}
	cmd.Flags().Int("n", 30, "Number of cities")
	cmd.Flags().String("out", "", "Output YAML file (default: print to stdout)")

	return cmd
}

func newCitiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print a city file and the length of its file-order tour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cities, err := config.LoadCities(args[0])
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), cities)
			}
			for i, c := range cities {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%g\t%g\n", i, c.X, c.Y)
			}
			identity := make(tsp.Tour, len(cities))
			for i := range identity {
				identity[i] = i
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cities: %d, file-order tour length: %.3f\n",
				len(cities), tsp.TourLength(cities, identity))

			return nil
		},
	}
}
