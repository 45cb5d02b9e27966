package scene

import "github.com/tristanschneider/syx-sub002/internal/task"

// Gate wraps fn so it only runs when the machine's active scene is id and
// its state is required. The wrapper runs at execution time inside the
// scheduler — the task itself is still submitted and still carries its
// fingerprint's dependency edges every frame, per §4.9's requirement that
// gating never bypass the graph, even on frames where the body is a no-op.
func Gate(machine *Machine, id ID, required State, fn func(*task.Args)) func(*task.Args) {
	return func(args *task.Args) {
		if machine.Active() != id || machine.State() != required {
			return
		}
		fn(args)
	}
}
