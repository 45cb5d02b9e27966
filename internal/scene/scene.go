// Package scene implements the scene-gating state machine of §4.9: a
// four-state cycle (NeedsInit, Updating, NeedsUninit, UninitWait) that
// gates which scene-scoped tasks execute each frame, without ever removing
// those tasks from the dependency graph.
package scene

// ID names a scene. Applications define their own scene identifiers; the
// machine treats ID as an opaque comparable value.
type ID string

// State is a step in the scene lifecycle.
type State int

const (
	NeedsInit State = iota
	Updating
	NeedsUninit
	UninitWait
)

func (s State) String() string {
	switch s {
	case Updating:
		return "Updating"
	case NeedsUninit:
		return "NeedsUninit"
	case UninitWait:
		return "UninitWait"
	default:
		return "NeedsInit"
	}
}

// Machine tracks the active scene and its lifecycle state.
type Machine struct {
	active     ID
	state      State
	pending    ID
	hasPending bool
}

// NewMachine creates a machine whose initial scene starts at NeedsInit (it
// has not yet run its init hooks).
func NewMachine(initial ID) *Machine {
	return &Machine{active: initial, state: NeedsInit}
}

// Active returns the currently active scene id.
func (m *Machine) Active() ID { return m.active }

// State returns the active scene's lifecycle state.
func (m *Machine) State() State { return m.state }

// NavigateTo requests a transition to target. If the active scene is
// currently Updating, this immediately starts its teardown by moving to
// NeedsUninit; otherwise the request is remembered. A scene still in
// NeedsInit first reaches Updating, and the next Advance then starts its
// teardown; the target is swapped in when the cycle leaves UninitWait.
func (m *Machine) NavigateTo(target ID) {
	if target == m.active && m.state == Updating {
		return
	}
	m.pending = target
	m.hasPending = true
	if m.state == Updating {
		m.state = NeedsUninit
	}
}

// Advance steps the machine one frame: NeedsInit -> Updating, Updating is a
// fixed point absent a pending navigation, NeedsUninit -> UninitWait, and
// UninitWait -> NeedsInit (swapping in the pending scene, if any).
func (m *Machine) Advance() {
	switch m.state {
	case NeedsInit:
		m.state = Updating
	case NeedsUninit:
		m.state = UninitWait
	case UninitWait:
		if m.hasPending {
			m.active = m.pending
			m.hasPending = false
		}
		m.state = NeedsInit
	case Updating:
		// fixed point unless a navigation is pending
		if m.hasPending {
			m.state = NeedsUninit
		}
	}
}
