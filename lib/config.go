package lib

/* config.go reads and validates sphgate config files. */

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/sphgate/lib/geom"
)

const ExampleConfig = `[Simulation]

#######################
# Required Parameters #
#######################

# Dim is the dimensionality of the simulation, either 2 or 3.
Dim = 2

# DT and TF are the timestep and the final time, in code units.
DT = 1e-2
TF = 6.0

#######################
# Optional Parameters #
#######################

# Directory which snapshot files will be written to, and the number of steps
# between snapshots. Snapshots are disabled if OutputInterval isn't set.
# OutputDir = path/to/output/dir
# OutputInterval = 100

# Number of steps between progress lines. Disabled if not set.
# LogInterval = 100

# Number of threads used. Set to -1 to use every logical core.
# Threads = -1

# Shrink the timestep when an inlet reports that particles could skip a
# buffer layer in a single step. Default is false.
# Adaptive = false

# Re-check the collection-disjointness invariant after every step. This is
# an O(n) debugging aid, not something production runs need.
# CheckInvariants = false

[Inlet]

# Axis is the inflow direction.
Axis = x

# The buffer region. Particles are promoted to fluid once they reach the max
# bound along Axis. In 2D setups the z bounds are ignored.
XMin = -0.4
XMax = 0.0
YMin = 0.0
YMax = 1.0

# Layers stacked copies of the exit-plane row are placed Spacing apart along
# the negative inflow direction.
Spacing = 0.1
Layers = 5

# PlaneSpacing is the distance between template particles along the exit
# plane, and Speed is the inflow speed every template particle starts with.
PlaneSpacing = 0.1
Speed = 0.25

# Template particle attributes. If unset, mass defaults to PlaneSpacing,
# the smoothing length to 1.5*PlaneSpacing, and the density to 1.
# Mass = 0.1
# H = 0.15
# Rho = 1.0

[Outlet]

# Axis is the outflow direction.
Axis = x

# The capture region. Fluid particles entering it are converted to outlet
# particles, and outlet particles are deleted once they pass the max bound
# along Axis.
XMin = 0.5
XMax = 1.0
YMin = 0.0
YMax = 1.0`

// Config mirrors the sections and variables of a sphgate config file. It
// stores raw user input: Process() turns it into validated Args.
type Config struct {
	Simulation SimulationConfig
	Inlet      InletConfig
	Outlet     OutletConfig
}

type SimulationConfig struct {
	Dim             int
	DT, TF          float64
	OutputDir       string
	OutputInterval  int
	LogInterval     int
	Threads         int
	Adaptive        bool
	CheckInvariants bool
}

type InletConfig struct {
	Axis                   string
	XMin, XMax, YMin, YMax float64
	ZMin, ZMax             float64
	Spacing                float64
	Layers                 int
	PlaneSpacing           float64
	Speed                  float64
	Mass, H, Rho           float64
}

type OutletConfig struct {
	Axis                   string
	XMin, XMax, YMin, YMax float64
	ZMin, ZMax             float64
}

// ParseConfigFile reads a config file into a raw Config.
func ParseConfigFile(fileName string) (*Config, error) {
	cfg := &Config{ }
	cfg.Simulation.Threads = -1
	if err := gcfg.ReadFileInto(cfg, fileName); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InletArgs is the processed form of InletConfig.
type InletArgs struct {
	Axis         geom.Axis
	Region       geom.Region
	Spacing      float64
	Layers       int
	PlaneSpacing float64
	Speed        float64
	Mass, H, Rho float64
}

// OutletArgs is the processed form of OutletConfig.
type OutletArgs struct {
	Axis   geom.Axis
	Region geom.Region
}

// Args stores configuration information. It is a post-processed version of
// Config.
type Args struct {
	Dim             int
	DT, TF          float64
	OutputDir       string
	OutputInterval  int
	LogInterval     int
	Threads         int
	Adaptive        bool
	CheckInvariants bool

	Inlet  InletArgs
	Outlet OutletArgs
}

// Process converts the raw user input to a format which is more useful for
// internal functions and applies defaults. Validation which requires building
// the actual collections and managers is left to the setup functions.
func (cfg *Config) Process() (*Args, error) {
	sim := &cfg.Simulation
	if sim.Dim != 2 && sim.Dim != 3 {
		return nil, fmt.Errorf("Dim is set to %d, but must be 2 or 3.",
			sim.Dim)
	}
	if sim.DT <= 0 {
		return nil, fmt.Errorf("DT is set to %g, but must be positive.",
			sim.DT)
	}
	if sim.TF <= 0 {
		return nil, fmt.Errorf("TF is set to %g, but must be positive.",
			sim.TF)
	}
	if sim.OutputInterval > 0 && sim.OutputDir == "" {
		return nil, fmt.Errorf(
			"OutputInterval is set, but no OutputDir is given.",
		)
	}

	inAxis, err := geom.ParseAxis(cfg.Inlet.Axis)
	if err != nil { return nil, err }
	outAxis, err := geom.ParseAxis(cfg.Outlet.Axis)
	if err != nil { return nil, err }

	inRegion, err := configRegion(
		sim.Dim, cfg.Inlet.XMin, cfg.Inlet.XMax, cfg.Inlet.YMin,
		cfg.Inlet.YMax, cfg.Inlet.ZMin, cfg.Inlet.ZMax,
	)
	if err != nil { return nil, fmt.Errorf("In the [Inlet] section: %s", err.Error()) }
	outRegion, err := configRegion(
		sim.Dim, cfg.Outlet.XMin, cfg.Outlet.XMax, cfg.Outlet.YMin,
		cfg.Outlet.YMax, cfg.Outlet.ZMin, cfg.Outlet.ZMax,
	)
	if err != nil { return nil, fmt.Errorf("In the [Outlet] section: %s", err.Error()) }

	if cfg.Inlet.PlaneSpacing <= 0 {
		return nil, fmt.Errorf(
			"PlaneSpacing is set to %g, but must be positive.",
			cfg.Inlet.PlaneSpacing,
		)
	}

	// Standard SPH defaults for the template attributes, in units of the
	// plane spacing.
	mass, h, rho := cfg.Inlet.Mass, cfg.Inlet.H, cfg.Inlet.Rho
	if mass == 0 {
		mass = cfg.Inlet.PlaneSpacing
	}
	if h == 0 {
		h = 1.5 * cfg.Inlet.PlaneSpacing
	}
	if rho == 0 {
		rho = 1.0
	}

	return &Args{
		Dim: sim.Dim, DT: sim.DT, TF: sim.TF,
		OutputDir: sim.OutputDir, OutputInterval: sim.OutputInterval,
		LogInterval: sim.LogInterval, Threads: sim.Threads,
		Adaptive: sim.Adaptive, CheckInvariants: sim.CheckInvariants,
		Inlet: InletArgs{
			Axis: inAxis, Region: inRegion,
			Spacing: cfg.Inlet.Spacing, Layers: cfg.Inlet.Layers,
			PlaneSpacing: cfg.Inlet.PlaneSpacing, Speed: cfg.Inlet.Speed,
			Mass: mass, H: h, Rho: rho,
		},
		Outlet: OutletArgs{ Axis: outAxis, Region: outRegion },
	}, nil
}

// configRegion builds a Region from config bounds. 2D setups leave the z
// axis unbounded.
func configRegion(
	dim int, xMin, xMax, yMin, yMax, zMin, zMax float64,
) (geom.Region, error) {
	if dim == 2 {
		zMin, zMax = geom.Unbounded()
	}
	return geom.NewRegion(
		[3]float64{ xMin, yMin, zMin }, [3]float64{ xMax, yMax, zMax },
	)
}
