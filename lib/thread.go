package lib

/* thread.go contains functions useful for multi-threading. */

import (
	"fmt"
	"runtime"
)

// SetThreads sets the number of OS threads the runtime schedules
// simultaneously. n = -1 uses every logical core.
func SetThreads(n int) error {
	if n == -1 {
		n = runtime.NumCPU()
	}
	if n < 1 {
		return fmt.Errorf("%d threads requested, but at least 1 is needed. "+
			"Set Threads=-1 to use every logical core.", n)
	}
	if n > runtime.NumCPU() {
		return fmt.Errorf("%d threads requested, but your system only has "+
			"%d logical cores.", n, runtime.NumCPU())
	}
	runtime.GOMAXPROCS(n)
	return nil
}
