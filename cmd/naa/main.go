package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

/******************************************************************************

This is the entry point for the naa command line utility. It's separated
from the actual &cli.App{} definition to make testing easier, following the
same split poly itself uses between main.go and commands.go.

naa wraps the activation-analysis engine: solve, solve_element, compliance
and max_ppm, each exposed as its own subcommand. All four read their
nuclear data from CSV files via the csvload collaborator, run build_store
on it, and print a JSON report to stdout.

******************************************************************************/

var log = logrus.New()

func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "naa",
		Usage: "Neutron activation analysis: irradiate, cool, and check waste compliance.",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "activation",
				Aliases:  []string{"a"},
				Required: true,
				Usage:    "Path to the activation table CSV (Symbol, A, Daughter_Isotope, Reaction, Max_XS, ...).",
			},
			&cli.StringFlag{
				Name:    "decay",
				Aliases: []string{"d"},
				Usage:   "Path to the decay table CSV (Parent_Isotope, Child_Isotope, Branching_Ratio, ...).",
			},
			&cli.StringFlag{
				Name:    "limits",
				Aliases: []string{"l"},
				Usage:   "Path to the regulatory limits table CSV (Isotope, Limit_Clearance_Bq_g, Limit_Exemption_Bq_g).",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable Debug-level logging. Dropped or conflicting records are logged as warnings either way.",
			},
		},

		Commands: []*cli.Command{
			{
				Name:  "solve",
				Usage: "Irradiate and optionally cool a single isotope, reporting every reachable product.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "isotope", Required: true, Usage: "Starting isotope, e.g. Co-59."},
					&cli.Float64Flag{Name: "mass-g", Required: true, Usage: "Target mass of the starting isotope, in grams."},
					&cli.Float64Flag{Name: "flux", Required: true, Usage: "Thermal neutron flux, in n/cm^2/s."},
					&cli.Float64Flag{Name: "t-irr-s", Required: true, Usage: "Irradiation duration, in seconds."},
					&cli.Float64Flag{Name: "t-cool-s", Usage: "Cooling duration after irradiation, in seconds."},
					&cli.Float64Flag{Name: "abundance", Value: 1.0, Usage: "Isotopic abundance fraction of the starting isotope."},
					&cli.IntFlag{Name: "depth", Value: 6, Usage: "Maximum chain depth to enumerate."},
				},
				Action: solveCommand,
			},
			{
				Name:  "element",
				Usage: "Expand a chemical element into its natural isotopes and solve each.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "element", Required: true, Usage: "Element symbol, e.g. Co."},
					&cli.Float64Flag{Name: "total-mass-g", Required: true, Usage: "Total mass of the element, in grams."},
					&cli.Float64Flag{Name: "flux", Required: true, Usage: "Thermal neutron flux, in n/cm^2/s."},
					&cli.Float64Flag{Name: "t-irr-s", Required: true, Usage: "Irradiation duration, in seconds."},
					&cli.Float64Flag{Name: "t-cool-s", Usage: "Cooling duration after irradiation, in seconds."},
					&cli.BoolFlag{Name: "merge", Usage: "Merge rows that converge on the same terminal isotope."},
					&cli.IntFlag{Name: "depth", Value: 6, Usage: "Maximum chain depth to enumerate."},
				},
				Action: elementCommand,
			},
			{
				Name:  "compliance",
				Usage: "Check whether a waste sample's impurities clear a regulatory limit.",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "impurity", Usage: "Impurity as Element=PPM, repeatable."},
					&cli.StringFlag{Name: "main-element", Usage: "Main element of the sample, included at its full mass."},
					&cli.Float64Flag{Name: "main-mass-g", Required: true, Usage: "Mass of the main sample, in grams."},
					&cli.Float64Flag{Name: "flux", Required: true, Usage: "Thermal neutron flux, in n/cm^2/s."},
					&cli.Float64Flag{Name: "t-irr-s", Required: true, Usage: "Irradiation duration, in seconds."},
					&cli.Float64Flag{Name: "t-cool-s", Usage: "Cooling duration after irradiation, in seconds."},
					&cli.Float64Flag{Name: "waste-mass-g", Required: true, Usage: "Mass of the final waste form, in grams."},
					&cli.StringFlag{Name: "limit-kind", Value: "clearance", Usage: "Regulatory threshold: clearance or exemption."},
					&cli.IntFlag{Name: "depth", Value: 6, Usage: "Maximum chain depth to enumerate."},
				},
				Action: complianceCommand,
			},
			{
				Name:  "max-ppm",
				Usage: "Derive the ppm ceiling for each candidate element that keeps a waste sample compliant.",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "element", Required: true, Usage: "Candidate element symbol, repeatable."},
					&cli.Float64Flag{Name: "flux", Required: true, Usage: "Thermal neutron flux, in n/cm^2/s."},
					&cli.Float64Flag{Name: "t-irr-s", Required: true, Usage: "Irradiation duration, in seconds."},
					&cli.Float64Flag{Name: "t-cool-s", Usage: "Cooling duration after irradiation, in seconds."},
					&cli.Float64Flag{Name: "waste-mass-g", Required: true, Usage: "Mass of the final waste form, in grams."},
					&cli.Float64Flag{Name: "sample-mass-g", Required: true, Usage: "Mass of the sample the ppm ceilings are relative to, in grams."},
					&cli.StringFlag{Name: "limit-kind", Value: "clearance", Usage: "Regulatory threshold: clearance or exemption."},
					&cli.StringSliceFlag{Name: "elem-fraction", Usage: "Elemental fraction metadata as Element=Fraction, repeatable."},
					&cli.StringSliceFlag{Name: "waste-fraction", Usage: "Waste fraction as Element=Fraction, divides the ppm ceilings, repeatable."},
					&cli.IntFlag{Name: "depth", Value: 6, Usage: "Maximum chain depth to enumerate."},
				},
				Action: maxPPMCommand,
			},
		},
	}
}
