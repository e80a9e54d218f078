//go:build profile

package prof

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"github.com/ardnew/chordkb/pkg"
)

// Enabled reports whether profiling is compiled in.
const Enabled = true

// Profiling errors.
var (
	// ErrCPUProfileActive indicates CPU profiling is already active.
	ErrCPUProfileActive = errors.New("cpu profile already active")

	// ErrInvalidProfile indicates an unknown profile or a CPU profile
	// requested as a snapshot.
	ErrInvalidProfile = errors.New("invalid profile")
)

var (
	cpuMutex  sync.Mutex
	cpuFile   *os.File
	cpuActive bool
)

// StartCPU starts CPU profiling into the file at path.
func StartCPU(path string) error {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()

	if cpuActive {
		return ErrCPUProfileActive
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("start cpu profile: %w", err)
	}
	cpuFile, cpuActive = f, true
	pkg.LogDebug(pkg.ComponentCLI, "cpu profile started", "path", path)
	return nil
}

// StopCPU stops CPU profiling and closes the profile file. It is safe to
// call when profiling is not active.
func StopCPU() error {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()

	if !cpuActive {
		return nil
	}
	pprof.StopCPUProfile()
	cpuActive = false
	f := cpuFile
	cpuFile = nil
	return f.Close()
}

// IsCPUActive reports whether CPU profiling is active.
func IsCPUActive() bool {
	cpuMutex.Lock()
	defer cpuMutex.Unlock()
	return cpuActive
}

// Write writes a snapshot profile to the file at path.
func Write(p Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s profile: %w", p, err)
	}
	if err := WriteTo(p, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTo writes a snapshot profile to w in pprof protobuf format.
func WriteTo(p Profile, w io.Writer) error {
	if p == ProfileCPU {
		return fmt.Errorf("%s: %w", p, ErrInvalidProfile)
	}
	prof := pprof.Lookup(string(p))
	if prof == nil {
		return fmt.Errorf("%s: %w", p, ErrInvalidProfile)
	}
	if p == ProfileHeap || p == ProfileAllocs {
		runtime.GC()
	}
	return prof.WriteTo(w, 0)
}

// Start begins a profiling session.
func Start(opts Options) (*Session, error) {
	s := &Session{opts: opts}
	if opts.CPU != "" {
		if err := StartCPU(opts.CPU); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Stop ends the session: it stops the CPU profile and writes the heap
// snapshot if one was requested. Stop is idempotent.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.opts.CPU != "" {
		errs = append(errs, StopCPU())
	}
	if s.opts.Heap != "" {
		errs = append(errs, Write(ProfileHeap, s.opts.Heap))
	}
	return errors.Join(errs...)
}
