package prof

// Profile names a runtime/pprof profile.
type Profile string

// Profiles.
const (
	ProfileCPU       Profile = "cpu"
	ProfileHeap      Profile = "heap"
	ProfileAllocs    Profile = "allocs"
	ProfileGoroutine Profile = "goroutine"
	ProfileBlock     Profile = "block"
	ProfileMutex     Profile = "mutex"
)

func (p Profile) String() string { return string(p) }

// Options selects the profiles of a [Session]. Empty paths are skipped.
type Options struct {
	CPU  string // streamed for the whole session
	Heap string // written by Stop
}

// Session is one profiling run started by [Start].
type Session struct {
	opts    Options
	stopped bool
}
