package task

import "github.com/tristanschneider/syx-sub002/internal/db"

// Args is the record a task callback receives at execution time: its
// thread index and accessors to the thread-local shadow database and the
// main database, per §4.6's "task-args record".
type Args struct {
	ThreadIndex int
	Shadow      *db.Database
	Main        *db.Database
}
