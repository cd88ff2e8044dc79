package domain

import "testing"

func ptr(id int64) *int64 {
	return &id
}

func tree() []Task {
	// 1
	// ├── 2 (completed)
	// ├── 3
	// └── 4
	//     └── 5
	return []Task{
		{ID: 1, Name: "release"},
		{ID: 2, Name: "docs", ParentID: ptr(1), IsCompleted: true},
		{ID: 3, Name: "tests", ParentID: ptr(1)},
		{ID: 4, Name: "build", ParentID: ptr(1)},
		{ID: 5, Name: "sign", ParentID: ptr(4)},
	}
}

func TestCompletingLastChildClosesParentChain(t *testing.T) {
	t.Parallel()

	tasks := tree()
	// Close 3 first, then 4's subtree; the second change must close 1 too.
	changes, err := PropagateCompletion(tasks, 3, true)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if len(changes) != 1 || !changes[3] {
		t.Fatalf("changes = %v, want only task 3 closed", changes)
	}
	tasks[2].IsCompleted = true

	changes, err = PropagateCompletion(tasks, 4, true)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	for _, id := range []int64{4, 5, 1} {
		if !changes[id] {
			t.Fatalf("changes = %v, want 4, 5 and 1 closed", changes)
		}
	}
}

func TestCompletingParentSweepsSubtree(t *testing.T) {
	t.Parallel()

	changes, err := PropagateCompletion(tree(), 4, true)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	if !changes[4] || !changes[5] {
		t.Fatalf("changes = %v, want subtree of 4 closed", changes)
	}
	// Sibling 3 is still open, so 1 must stay open.
	if _, ok := changes[1]; ok {
		t.Fatalf("changes = %v, parent must stay open while a sibling is open", changes)
	}
}

func TestReopeningChildReopensAncestors(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: 1, Name: "release", IsCompleted: true},
		{ID: 2, Name: "build", ParentID: ptr(1), IsCompleted: true},
		{ID: 3, Name: "sign", ParentID: ptr(2), IsCompleted: true},
	}
	changes, err := PropagateCompletion(tasks, 3, false)
	if err != nil {
		t.Fatalf("propagate: %v", err)
	}
	for _, id := range []int64{1, 2, 3} {
		done, ok := changes[id]
		if !ok || done {
			t.Fatalf("changes = %v, want whole ancestor chain reopened", changes)
		}
	}
}

func TestPropagationTerminatesOnCyclicParents(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: 1, Name: "a", ParentID: ptr(2)},
		{ID: 2, Name: "b", ParentID: ptr(1)},
		{ID: 3, Name: "self", ParentID: ptr(3)},
	}
	if _, err := PropagateCompletion(tasks, 1, true); err != nil {
		t.Fatalf("cyclic propagate: %v", err)
	}
	if _, err := PropagateCompletion(tasks, 3, false); err != nil {
		t.Fatalf("self-referential propagate: %v", err)
	}
}

func TestPropagationUnknownTask(t *testing.T) {
	t.Parallel()

	if _, err := PropagateCompletion(tree(), 99, true); err == nil {
		t.Fatal("unknown task must be rejected")
	}
}

func TestSubtreeCollectsDescendants(t *testing.T) {
	t.Parallel()

	ids := Subtree(tree(), 4)
	if len(ids) != 2 {
		t.Fatalf("subtree = %v, want [4 5]", ids)
	}
	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[4] || !seen[5] {
		t.Fatalf("subtree = %v, want 4 and 5", ids)
	}
}

func TestColorPaletteCycles(t *testing.T) {
	t.Parallel()

	if ColorFor(0) != Palette[0] {
		t.Fatalf("first color = %s, want %s", ColorFor(0), Palette[0])
	}
	if ColorFor(len(Palette)) != Palette[0] {
		t.Fatal("palette must wrap around")
	}
	if ColorFor(-3) != Palette[0] {
		t.Fatal("negative counts clamp to the first color")
	}
}
