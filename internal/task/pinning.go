package task

// Pinning is a task's thread constraint, set via setPinning in §4.5 and
// enforced by the scheduler's worker-pool dispatch in §4.6.
type Pinning int

const (
	// PinAny lets any idle worker execute the task.
	PinAny Pinning = iota
	// PinMain restricts execution to the thread designated index 0.
	PinMain
	// PinSpecific restricts execution to one named thread index.
	PinSpecific
	// PinSynchronous requires every worker idle; while it runs, nothing
	// else runs, and it both waits on and blocks every other task.
	PinSynchronous
)

func (p Pinning) String() string {
	switch p {
	case PinMain:
		return "main"
	case PinSpecific:
		return "specific"
	case PinSynchronous:
		return "synchronous"
	default:
		return "any"
	}
}
