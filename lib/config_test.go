package lib

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"testing"

	"github.com/phil-mansfield/sphgate/lib/geom"
	"github.com/phil-mansfield/sphgate/lib/particles"
)

// exampleArgs parses and processes the embedded example config, which keeps
// the example in sync with the parser.
func exampleArgs(t *testing.T) *Args {
	fname := filepath.Join(t.TempDir(), "sphgate.config")
	if err := ioutil.WriteFile(fname, []byte(ExampleConfig), 0644); err != nil {
		t.Fatal(err.Error())
	}

	cfg, err := ParseConfigFile(fname)
	if err != nil {
		t.Fatalf("ParseConfigFile failed: %s", err.Error())
	}
	args, err := cfg.Process()
	if err != nil {
		t.Fatalf("Process failed: %s", err.Error())
	}
	return args
}

func TestExampleConfigParses(t *testing.T) {
	args := exampleArgs(t)

	if args.Dim != 2 {
		t.Errorf("Expected Dim = 2, got %d.", args.Dim)
	}
	if args.DT != 1e-2 || args.TF != 6.0 {
		t.Errorf("Expected DT = 0.01 and TF = 6, got %g and %g.",
			args.DT, args.TF)
	}
	if args.Threads != -1 {
		t.Errorf("Expected the Threads default of -1, got %d.", args.Threads)
	}

	in := args.Inlet
	if in.Axis != geom.X {
		t.Errorf("Expected inlet axis x, got %s.", in.Axis)
	}
	if in.Region.Min[0] != -0.4 || in.Region.Max[0] != 0 ||
		in.Region.Min[1] != 0 || in.Region.Max[1] != 1 {
		t.Errorf("Inlet region parsed incorrectly: %v.", in.Region)
	}
	if !math.IsInf(in.Region.Min[2], -1) || !math.IsInf(in.Region.Max[2], 1) {
		t.Errorf("Expected an unbounded z axis in 2D, got %v.", in.Region)
	}
	if in.Spacing != 0.1 || in.Layers != 5 {
		t.Errorf("Expected spacing 0.1 with 5 layers, got %g and %d.",
			in.Spacing, in.Layers)
	}
	if in.Speed != 0.25 {
		t.Errorf("Expected inflow speed 0.25, got %g.", in.Speed)
	}
	// Defaults derived from PlaneSpacing.
	if in.Mass != 0.1 || in.H != 1.5*0.1 || in.Rho != 1.0 {
		t.Errorf("Expected default template attributes, got m = %g, "+
			"h = %g, rho = %g.", in.Mass, in.H, in.Rho)
	}

	out := args.Outlet
	if out.Region.Min[0] != 0.5 || out.Region.Max[0] != 1 {
		t.Errorf("Outlet region parsed incorrectly: %v.", out.Region)
	}
}

func TestProcessRejectsBadConfigs(t *testing.T) {
	base := func() *Config {
		cfg := &Config{ }
		cfg.Simulation = SimulationConfig{ Dim: 2, DT: 1e-2, TF: 6, Threads: -1 }
		cfg.Inlet = InletConfig{
			Axis: "x", XMin: -0.4, XMax: 0, YMin: 0, YMax: 1,
			Spacing: 0.1, Layers: 5, PlaneSpacing: 0.1, Speed: 0.25,
		}
		cfg.Outlet = OutletConfig{
			Axis: "x", XMin: 0.5, XMax: 1, YMin: 0, YMax: 1,
		}
		return cfg
	}

	tests := []struct {
		name   string
		mangle func(*Config)
	}{
		{ "bad dim", func(c *Config) { c.Simulation.Dim = 4 } },
		{ "zero dt", func(c *Config) { c.Simulation.DT = 0 } },
		{ "zero tf", func(c *Config) { c.Simulation.TF = 0 } },
		{ "bad inlet axis", func(c *Config) { c.Inlet.Axis = "w" } },
		{ "bad outlet axis", func(c *Config) { c.Outlet.Axis = "" } },
		{ "inverted inlet region", func(c *Config) { c.Inlet.XMin = 0.5 } },
		{ "zero-width outlet region", func(c *Config) { c.Outlet.XMax = 0.5 } },
		{ "zero plane spacing", func(c *Config) { c.Inlet.PlaneSpacing = 0 } },
		{
			"output interval without dir",
			func(c *Config) { c.Simulation.OutputInterval = 10 },
		},
	}

	for i := range tests {
		cfg := base()
		tests[i].mangle(cfg)
		if _, err := cfg.Process(); err == nil {
			t.Errorf("Expected Process to fail on a config with %s.",
				tests[i].name)
		}
	}

	// The unbroken base config must pass.
	if _, err := base().Process(); err != nil {
		t.Errorf("Expected the base config to pass, got '%s'.", err.Error())
	}
}

func TestCreateParticlesBuildsExitPlane(t *testing.T) {
	args := exampleArgs(t)
	reg := CreateParticles(args)

	inlet := reg.Array(particles.RoleInlet)
	if inlet.Len() != 11 {
		t.Fatalf("Expected an 11-particle exit-plane row, got %d.",
			inlet.Len())
	}
	if reg.Array(particles.RoleFluid).Len() != 0 ||
		reg.Array(particles.RoleOutlet).Len() != 0 {
		t.Errorf("Expected empty fluid and outlet collections.")
	}

	x, v := inlet.X(), inlet.V()
	for i := range x {
		if x[i][0] != 0 {
			t.Errorf("Particle %d is off the exit plane at x = %g.",
				i, x[i][0])
		}
		if v[i] != ([3]float64{ 0.25, 0, 0 }) {
			t.Errorf("Particle %d has velocity %v, expected u = 0.25.",
				i, v[i])
		}
	}
	// The row spans [YMin, YMax] exactly.
	if x[0][1] != 0 || x[len(x)-1][1] != 1 {
		t.Errorf("Expected the row to span y in [0, 1], got [%g, %g].",
			x[0][1], x[len(x)-1][1])
	}
}

func TestCreateBoundaries(t *testing.T) {
	args := exampleArgs(t)
	reg := CreateParticles(args)

	inlets, outlets, err := CreateBoundaries(args, reg)
	if err != nil {
		t.Fatalf("CreateBoundaries failed: %s", err.Error())
	}
	if len(inlets) != 1 || len(outlets) != 1 {
		t.Fatalf("Expected 1 inlet and 1 outlet, got %d and %d.",
			len(inlets), len(outlets))
	}

	// Five layers of the 11-particle row.
	if n := reg.Array(particles.RoleInlet).Len(); n != 55 {
		t.Errorf("Expected 55 inlet particles after stacking, got %d.", n)
	}
}
