package task

import "testing"

func TestFactoryCollectsFinalizedTasksInOrder(t *testing.T) {
	database, _ := newDatabase(t)
	f := NewFactory(database)

	b1 := f.NewBuilder()
	b1.SetName("first")
	b1.SetCallback(func(*Args) {})

	b2 := f.NewBuilder()
	b2.Discard()

	b3 := f.NewBuilder()
	b3.SetName("third")
	b3.SetCallback(func(*Args) {})

	tasks, err := f.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected discarded builder to be skipped, got %d tasks", len(tasks))
	}
	if tasks[0].Name != "first" || tasks[1].Name != "third" {
		t.Fatalf("expected registration order preserved, got %q then %q", tasks[0].Name, tasks[1].Name)
	}
}
