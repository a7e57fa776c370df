package stats

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
)

// WriteMemProfile writes a heap profile to filename.
func WriteMemProfile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating memory profile")
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrap(err, "writing memory profile")
	}
	return nil
}
