/*package lib glues the sphgate subpackages together: it parses config files
and command line arguments, applies defaults, and builds the particle
collections and boundary managers that the solver runs. Almost all of the
heavy lifting is done by lib/'s subpackages.*/
package lib

import (
	"fmt"
	"os"
)

// ParseCommandLine parses the command line arguments and returns the mode
// sphgate is being run in and the name of the config file, if one was given.
// Expects that the arguments are presented in the order:
// $ sphgate <mode> [config file]
func ParseCommandLine() (mode, configFile string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return "help", ""
	}
	mode = args[0]
	if len(args) > 1 {
		configFile = args[1]
	}
	return mode, configFile
}

// PrintHelp prints usage information to stdout.
func PrintHelp() {
	fmt.Println(`sphgate runs particle simulations with open (inlet/outlet) boundaries.

Usage:
    sphgate help
    sphgate example-config
    sphgate check <config file>
    sphgate run <config file>

'example-config' prints a commented example config file to stdout. 'check'
validates a config file and the boundary setup it describes without running
anything. 'run' runs the simulation.`)
}
