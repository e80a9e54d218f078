//go:build !profile

package prof

import (
	"io"

	"github.com/ardnew/chordkb/pkg"
)

// Enabled reports whether profiling is compiled in.
const Enabled = false

// Profiling errors (never returned by the stubs).
var (
	ErrCPUProfileActive error
	ErrInvalidProfile   error
)

// StartCPU is a no-op without the "profile" tag.
func StartCPU(string) error { return nil }

// StopCPU is a no-op without the "profile" tag.
func StopCPU() error { return nil }

// IsCPUActive always returns false without the "profile" tag.
func IsCPUActive() bool { return false }

// Write is a no-op without the "profile" tag.
func Write(Profile, string) error { return nil }

// WriteTo is a no-op without the "profile" tag.
func WriteTo(Profile, io.Writer) error { return nil }

// Start returns an inert session. Requested profiles are reported once
// as not compiled in.
func Start(opts Options) (*Session, error) {
	if opts.CPU != "" || opts.Heap != "" {
		pkg.LogWarn(pkg.ComponentCLI, "profiling not compiled in, rebuild with -tags profile")
	}
	return &Session{opts: opts}, nil
}

// Stop is a no-op without the "profile" tag.
func (s *Session) Stop() error { return nil }
