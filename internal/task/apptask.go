package task

// AppTask is the finalized product of a Builder: a fingerprint the
// scheduler uses for conflict detection, a callback carrying the actual
// work, the thread constraint, and a debug name. Per §4.5, Finalize
// produces exactly this four-tuple.
type AppTask struct {
	Fingerprint *Fingerprint
	Callback    func(*Args)
	Pinning     Pinning
	ThreadIndex int // meaningful only when Pinning == PinSpecific
	Name        string
}
