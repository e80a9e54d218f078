// Package prof wraps [runtime/pprof] for the chordkb command-line tools.
//
// The package is compiled in only with the "profile" build tag:
//
//	go build -tags profile ./cmd/chordkb
//
// Without the tag every function is a no-op and [Enabled] is false, so the
// profiling flags can stay wired into the CLI at no cost.
//
// A [Session] covers one command run. It streams a CPU profile while the
// command runs and writes a heap snapshot when stopped:
//
//	s, err := prof.Start(prof.Options{CPU: "cpu.prof", Heap: "heap.prof"})
//	if err != nil {
//	    return err
//	}
//	defer s.Stop()
//
// Only one CPU profile may be active at a time; a second [StartCPU] returns
// [ErrCPUProfileActive].
package prof
