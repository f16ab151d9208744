package tasks

import "testing"

func TestRestore_RederivesIDsAndLevels(t *testing.T) {
	tree := New(DefaultConfig())
	tree.Restore([]*Task{
		{Title: "Website", Subtasks: []*Task{
			{Title: "Login", Subtasks: []*Task{{Title: "Form"}}},
			{Title: "Payments"},
		}},
		nil,
		{Title: "Blog"},
	})

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2 (nil entries skipped)", len(roots))
	}
	want := map[string]struct {
		title string
		level int
	}{
		"task_0":     {"Website", 0},
		"task_0.0":   {"Login", 1},
		"task_0.0.0": {"Form", 2},
		"task_0.1":   {"Payments", 1},
		"task_1":     {"Blog", 0},
	}
	for id, w := range want {
		task := tree.Find(id)
		if task == nil {
			t.Errorf("%s not found after restore", id)
			continue
		}
		if task.Title != w.title || task.Level != w.level {
			t.Errorf("%s = %q level %d, want %q level %d", id, task.Title, task.Level, w.title, w.level)
		}
		if task.Status != StatusActive {
			t.Errorf("%s status = %s, want active", id, task.Status)
		}
	}
	if got := tree.Find("task_0.0.0").ParentID; got != "task_0.0" {
		t.Errorf("ParentID = %q, want task_0.0", got)
	}
}

func TestRestore_ContinuesCountersAfterLoad(t *testing.T) {
	tree := New(DefaultConfig())
	tree.Restore([]*Task{{Title: "Website", Subtasks: []*Task{{Title: "Login"}}}})

	root := mustRoot(t, tree, "Blog")
	if root != "task_1" {
		t.Errorf("new root id = %q, want task_1", root)
	}
	child := mustChild(t, tree, "task_0", "Payments")
	if child != "task_0.1" {
		t.Errorf("new child id = %q, want task_0.1", child)
	}
}

func TestRestore_CompletionFlowsDownward(t *testing.T) {
	tree := New(DefaultConfig())
	tree.Restore([]*Task{
		{Title: "Done root", Completed: true, Subtasks: []*Task{{Title: "Open child"}}},
		{Title: "Status only", Status: StatusCompleted},
	})

	child := tree.Find("task_0.0")
	if !child.Completed || child.Status != StatusCompleted {
		t.Error("child of a completed root must be completed")
	}
	statusOnly := tree.Find("task_1")
	if !statusOnly.Completed {
		t.Error("completed status should imply the completed flag")
	}
}

func TestRestore_HoistsBeyondMaxDepth(t *testing.T) {
	tree := New(Config{MaxDepth: 1})
	tree.Restore([]*Task{
		{Title: "Root", Subtasks: []*Task{
			{Title: "A", Subtasks: []*Task{{Title: "A1"}, {Title: "A2"}}},
			{Title: "B"},
		}},
	})

	root := tree.Find("task_0")
	var titles []string
	for _, st := range root.Subtasks {
		titles = append(titles, st.Title)
		if st.Level != 1 {
			t.Errorf("%s level = %d, want 1", st.Title, st.Level)
		}
		if len(st.Subtasks) != 0 {
			t.Errorf("%s kept children beyond max depth", st.Title)
		}
	}
	want := []string{"A", "A1", "A2", "B"}
	if len(titles) != len(want) {
		t.Fatalf("subtasks = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("subtask[%d] = %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestRestore_UpdatedAtDefaultsToCreatedAt(t *testing.T) {
	tree := New(DefaultConfig())
	tree.Restore([]*Task{{Title: "Root", CreatedAt: clock}})
	if got := tree.Find("task_0").UpdatedAt; !got.Equal(clock) {
		t.Errorf("UpdatedAt = %v, want %v", got, clock)
	}
}

func TestRestoreArchived(t *testing.T) {
	tree := New(DefaultConfig())
	tree.RestoreArchived([]*Task{
		{Title: "Old project", Completed: true, Subtasks: []*Task{{Title: "Step"}}},
		{Title: "Older project"},
	})

	archived := tree.Archived()
	if len(archived) != 2 {
		t.Fatalf("got %d archived tasks, want 2", len(archived))
	}
	for i, a := range archived {
		if a.Status != StatusArchived {
			t.Errorf("archived[%d] status = %s", i, a.Status)
		}
	}
	if archived[0].ID != "archived_0" || archived[1].ID != "archived_1" {
		t.Errorf("ids = %s, %s", archived[0].ID, archived[1].ID)
	}
	if tree.Find("archived_0") != nil {
		t.Error("archived tasks must not be reachable from the active forest")
	}
	if !archived[0].Subtasks[0].Completed {
		t.Error("archived subtree should inherit completion")
	}
}
