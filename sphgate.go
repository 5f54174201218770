package main

import (
	"fmt"
	"log"

	"github.com/phil-mansfield/sphgate/lib"
	"github.com/phil-mansfield/sphgate/lib/error"
	"github.com/phil-mansfield/sphgate/lib/particles"
	"github.com/phil-mansfield/sphgate/lib/sim"
)

func main() {
	// Parse arguments.
	mode, configFile := lib.ParseCommandLine()

	// Run the chosen mode.
	switch mode {
	case "help":
		lib.PrintHelp()
	case "example-config":
		fmt.Println(lib.ExampleConfig)
	case "check":
		Check(configFile)
	case "run":
		Run(configFile)
	default:
		error.External(
			"You attempted to run sphgate in the mode '%s', but the only "+
				"valid modes are 'help', 'example-config', 'check', and "+
				"'run'.", mode,
		)
	}
}

// Check runs sphgate's "check" mode, which tests for errors in the config
// file and in the boundary setup it describes without running a simulation.
func Check(configFile string) {
	args := setup(configFile)
	reg := lib.CreateParticles(args)
	if _, _, err := lib.CreateBoundaries(args, reg); err != nil {
		error.External(err.Error())
	}
	fmt.Println("No errors detected.")
}

// Run runs sphgate's "run" mode, which builds the collections and boundary
// managers from the config file and steps the simulation to its final time.
func Run(configFile string) {
	args := setup(configFile)

	if err := lib.SetThreads(args.Threads); err != nil {
		error.External(err.Error())
	}

	reg := lib.CreateParticles(args)
	inlets, outlets, err := lib.CreateBoundaries(args, reg)
	if err != nil {
		error.External(err.Error())
	}

	solver, err := sim.NewSolver(reg, nil, inlets, outlets, sim.Config{
		DT: args.DT, TF: args.TF,
		Adaptive: args.Adaptive, CheckInvariants: args.CheckInvariants,
		OutputDir: args.OutputDir, OutputInterval: args.OutputInterval,
		LogInterval: args.LogInterval,
	})
	if err != nil {
		error.External(err.Error())
	}

	if err := solver.Run(); err != nil {
		// Solver errors are bookkeeping invariant violations, not user
		// mistakes.
		error.Internal(err.Error())
	}

	d := solver.Diagnostics()
	log.Printf(
		"finished at t = %.4f after %d steps: %d inlet, %d fluid, %d outlet "+
			"particles", solver.T(), solver.StepCount(),
		d.N[particles.RoleInlet], d.N[particles.RoleFluid],
		d.N[particles.RoleOutlet],
	)
}

// setup parses and processes a config file, exiting with a descriptive
// message if either fails.
func setup(configFile string) *lib.Args {
	if configFile == "" {
		error.External(
			"No config file was given. Run 'sphgate example-config' to see " +
				"what one looks like.",
		)
	}
	cfg, err := lib.ParseConfigFile(configFile)
	if err != nil {
		error.External(err.Error())
	}
	args, err := cfg.Process()
	if err != nil {
		error.External(err.Error())
	}
	return args
}
